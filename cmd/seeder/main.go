// Package main provides the seeder CLI for the academic records database.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/locvowork/academic_records/internal/bootstrap"
)

// app is initialized by PersistentPreRunE and closed once the command returns.
var app *bootstrap.App

func main() {
	if err := execute(rootCmd); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execute runs cmd and releases the database even when the command fails.
func execute(cmd *cobra.Command) error {
	defer closeApp()
	return cmd.Execute()
}

func closeApp() {
	if app == nil || app.DB == nil {
		return
	}
	if err := app.DB.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "close database:", err)
	}
	app = nil
}

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Manage the academic records database",
	Long: `seeder prepares the academic records database: it creates the schema,
loads the sample departments, professors, students and books, clears all
rows, and exports tables to xlsx. Connection settings come from the same
environment variables as the server.`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(exportCmd)
}

func initApp(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app = bootstrap.NewApp()
	return app.Initialize(ctx)
}
