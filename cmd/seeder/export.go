package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/locvowork/academic_records/internal/service"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [entity]",
	Short: "Write one entity table, or all of them, to an xlsx file",
	Long: fmt.Sprintf(`Write an entity table to an xlsx file. Without an entity every table
is written to its own sheet of one workbook.

Entities: %s`, strings.Join(service.Entities(), ", ")),
	Args: cobra.MatchAll(cobra.MaximumNArgs(1), knownEntity),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		entity := ""
		if len(args) == 1 {
			entity = args[0]
		}

		var (
			data []byte
			err  error
		)
		if entity == "" {
			data, err = app.Exports.ExportAll(ctx)
		} else {
			data, err = app.Exports.ExportEntity(ctx, entity)
		}
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}

		path := outputPath(exportOutput, entity)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", path, len(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: <entity>.xlsx or academic_records.xlsx)")
}

// knownEntity runs before the database connection is opened.
func knownEntity(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && !slices.Contains(service.Entities(), args[0]) {
		return fmt.Errorf("unknown entity %q (valid: %s)", args[0], strings.Join(service.Entities(), ", "))
	}
	return nil
}

func outputPath(flag, entity string) string {
	switch {
	case flag != "":
		return flag
	case entity != "":
		return entity + ".xlsx"
	default:
		return "academic_records.xlsx"
	}
}
