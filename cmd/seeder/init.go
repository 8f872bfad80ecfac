package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/locvowork/academic_records/internal/database"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the schema and insert the sample rows",
	Long: `Create the tables and triggers if missing, then insert the sample rows.
Rows whose unique key already exists are skipped, so init can be re-run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Schema is ensured by PersistentPreRunE.
		data, err := database.LoadSeedData()
		if err != nil {
			return err
		}

		stats, err := database.NewDataSeeder(app.DB).SeedData(cmd.Context(), data)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Database initialized")
		for _, table := range database.Tables {
			fmt.Fprintf(out, "  %-12s %d inserted\n", table, stats[table])
		}
		return nil
	},
}
