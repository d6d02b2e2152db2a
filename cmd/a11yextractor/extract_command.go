package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tvdtogt/a11yExtractor/internal/config"
	"github.com/tvdtogt/a11yExtractor/internal/report"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var inputDir string
	var outputPath string
	var failureLog string
	var noStore bool

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Build the accessibility CSV report from a directory of manifests",
		Long: `Reads every .json manifest directly inside --input (defaults to
paths.manifest_dir) and writes one CSV row per manifest to --output (defaults
to paths.output_dir/paths.report_name). Manifests that fail to load are
appended to the failure log and skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			input, err := resolvePathFlag(inputDir, cfg.Paths.ManifestDir)
			if err != nil {
				return fmt.Errorf("resolve --input: %w", err)
			}
			output, err := resolvePathFlag(outputPath, cfg.ReportPath())
			if err != nil {
				return fmt.Errorf("resolve --output: %w", err)
			}
			logPath := cfg.FailureLogPath(output)
			if strings.TrimSpace(failureLog) != "" {
				if logPath, err = config.ExpandPath(failureLog); err != nil {
					return fmt.Errorf("resolve --log: %w", err)
				}
			}

			if err := os.MkdirAll(input, 0o755); err != nil {
				return fmt.Errorf("create input directory: %w", err)
			}

			opts := report.Options{
				InputDir:       input,
				OutputPath:     output,
				FailureLogPath: logPath,
				Logger:         logger,
			}
			if !noStore {
				st, err := ctx.openStore()
				if err != nil {
					return err
				}
				if st != nil {
					defer st.Close()
					opts.Recorder = st
				}
			}

			summary, err := report.Run(cmd.Context(), opts)
			out := cmd.OutOrStdout()
			if errors.Is(err, report.ErrNoValidInput) {
				fmt.Fprintln(out, "No valid JSON files found.")
				if summary.Failed > 0 {
					fmt.Fprintf(out, "%d file(s) failed to load; see %s\n", summary.Failed, logPath)
				}
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, summary.Message())
			if summary.Failed > 0 {
				fmt.Fprintf(out, "Skipped %d file(s) that failed to load; see %s\n", summary.Failed, logPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Directory containing manifest .json files")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "CSV report path")
	cmd.Flags().StringVar(&failureLog, "log", "", "Failure log path (defaults to log.txt next to the report)")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "Do not record this run in the run history")
	return cmd
}

func resolvePathFlag(value, fallback string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return config.ExpandPath(value)
}
