package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tvdtogt/a11yExtractor/internal/manifest"
	"github.com/tvdtogt/a11yExtractor/internal/record"
)

type loadError struct {
	err error
}

func (l *loadError) RecordFailure(path string, err error) {
	l.err = fmt.Errorf("load %s: %w", path, err)
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "inspect <manifest.json>",
		Short:       "Show the report row extracted from one manifest",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			var failure loadError
			m, ok := manifest.Load(path, &failure)
			if !ok {
				return failure.err
			}
			row := record.Extract(m, filepath.Base(path))

			if asJSON {
				return writeJSON(cmd, row)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderRecord(row))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the row as JSON")
	return cmd
}

func renderRecord(row record.Record) string {
	fields := row.Fields()
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		var value string
		switch v := f.Value.(type) {
		case int:
			value = strconv.Itoa(v)
		case string:
			value = v
		default:
			value = fmt.Sprint(v)
		}
		rows = append(rows, []string{f.Name, value})
	}
	return renderTable([]string{"Column", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}) + "\n"
}
