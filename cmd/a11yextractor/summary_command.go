package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tvdtogt/a11yExtractor/internal/language"
	"github.com/tvdtogt/a11yExtractor/internal/report"
	"github.com/tvdtogt/a11yExtractor/internal/summary"
)

func newSummaryCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary [report.csv]",
		Short: "Summarize accessibility coverage in a CSV report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				path = cfg.ReportPath()
			}

			rows, err := report.ReadCSV(path)
			if err != nil {
				return err
			}
			s := summary.Build(rows)
			if asJSON {
				return writeJSON(cmd, s)
			}
			writeSummary(cmd.OutOrStdout(), path, s, shouldColorize(cmd.OutOrStdout()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the summary as JSON")
	return cmd
}

func writeSummary(out io.Writer, path string, s summary.Summary, colorize bool) {
	for _, line := range renderSectionHeader("Report "+path, colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Publications", statusInfo, strconv.Itoa(s.Publications), colorize))
	fmt.Fprintln(out, renderStatusLine("With ISBN", statusInfo, ratio(s.WithISBN, s.Publications), colorize))
	fmt.Fprintln(out, renderStatusLine("Non-visual reading", coverageKind(s.NonVisualReading, s.Publications), ratio(s.NonVisualReading, s.Publications), colorize))
	fmt.Fprintln(out, renderStatusLine("A11y summary", coverageKind(s.WithSummary, s.Publications), ratio(s.WithSummary, s.Publications), colorize))
	fmt.Fprintln(out)

	if s.Publications == 0 {
		return
	}

	fmt.Fprintln(out, renderCounts("Feature", s.Features))
	fmt.Fprintln(out)

	img := s.Images
	fmt.Fprintln(out, renderTable(
		[]string{"Images", "JPEG", "PNG", "GIF", "Small", "Medium", "Large", "Unsized"},
		[][]string{{
			strconv.Itoa(img.Total), strconv.Itoa(img.JPEG), strconv.Itoa(img.PNG), strconv.Itoa(img.GIF),
			strconv.Itoa(img.Small), strconv.Itoa(img.Medium), strconv.Itoa(img.Large), strconv.Itoa(img.Unsized()),
		}},
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
	))
	fmt.Fprintln(out)

	fmt.Fprintln(out, renderLanguageCounts(s.Languages))
	if len(s.Layouts) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderCounts("Layout", s.Layouts))
	}
	if len(s.Hazards) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderCounts("Hazard", s.Hazards))
	}
	if len(s.OtherFeatures) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderCounts("Other feature", s.OtherFeatures))
	}
}

func renderCounts(title string, counts []summary.Count) string {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Label, strconv.Itoa(c.Count), fmt.Sprintf("%.1f%%", c.Percent)})
	}
	return renderTable([]string{title, "Publications", "Share"}, rows, []columnAlignment{alignLeft, alignRight, alignRight})
}

func renderLanguageCounts(counts []summary.Count) string {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		code := ""
		if c.Key != "(none)" {
			code = language.ToISO3(c.Key)
		}
		rows = append(rows, []string{c.Label, code, strconv.Itoa(c.Count), fmt.Sprintf("%.1f%%", c.Percent)})
	}
	return renderTable(
		[]string{"Language", "ISO 639-2", "Publications", "Share"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
	)
}

func ratio(n, total int) string {
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%d of %d (%.1f%%)", n, total, float64(n)*100/float64(total))
}

func coverageKind(n, total int) statusKind {
	switch {
	case total == 0:
		return statusInfo
	case n == total:
		return statusOK
	case n == 0:
		return statusError
	default:
		return statusWarn
	}
}
