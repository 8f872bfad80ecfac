package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/locvowork/academic_records/internal/database"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every row and restart the id sequences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !clearYes {
			fmt.Fprintln(out, "This will delete all departments, professors, students and books!")
			fmt.Fprint(out, "Continue? (yes/no): ")
			if !confirmed(cmd.InOrStdin()) {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
		}

		if err := database.NewDataSeeder(app.DB).ClearData(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(out, "All tables cleared")
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip the confirmation prompt")
}

// confirmed reads one line and accepts only "yes".
func confirmed(r io.Reader) bool {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "yes")
}
