package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tvdtogt/a11yExtractor/internal/record"
	"github.com/tvdtogt/a11yExtractor/internal/store"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List report runs recorded in the run history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(ctx, func(st *store.Store) error {
				runs, err := st.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, runs)
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderRuns(runs))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	cmd.AddCommand(newRunsShowCommand(ctx))
	cmd.AddCommand(newRunsISBNCommand(ctx))
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the rows produced by a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(ctx, func(st *store.Store) error {
				run, err := st.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if run == nil {
					return fmt.Errorf("run %s not found", args[0])
				}
				rows, err := st.RunRecords(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, struct {
						Run     store.Run       `json:"run"`
						Records []record.Record `json:"records"`
					}{*run, rows})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s: %s -> %s\n", run.ID, run.InputDir, run.OutputPath)
				fmt.Fprintf(out, "Processed %d, failed %d, took %s\n", run.Processed, run.Failed, run.Duration().Round(time.Millisecond))
				fmt.Fprintln(out, renderRecordRows(rows))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newRunsISBNCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "isbn <isbn>",
		Short: "Show every recorded row for an ISBN, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(ctx, func(st *store.Store) error {
				rows, err := st.FindByISBN(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if len(rows) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No rows recorded for ISBN %s\n", args[0])
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderRecordRows(rows))
				return nil
			})
		},
	}
}

func withStore(ctx *commandContext, fn func(*store.Store) error) error {
	st, err := ctx.openStore()
	if err != nil {
		return err
	}
	if st == nil {
		return errors.New("run history is disabled (set store.enabled = true)")
	}
	defer st.Close()
	return fn(st)
}

func renderRuns(runs []store.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(run.Processed),
			strconv.Itoa(run.Failed),
			run.OutputPath,
		})
	}
	return renderTable(
		[]string{"Run", "Started", "Processed", "Failed", "Output"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}

func renderRecordRows(rows []record.Record) string {
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.FileName,
			r.ISBN,
			r.Title,
			strconv.Itoa(r.Images),
			strconv.Itoa(r.NonVisualReading.Int()),
		})
	}
	return renderTable(
		[]string{"File", "ISBN", "Title", "Images", "Non-visual"},
		table,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	)
}
