package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/snaplist/pkg/display"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tasks",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := mustOpen(ctx)

		view := display.New(a.list, nil)
		defer view.Close()

		rows, err := view.Rows()
		if err != nil {
			fatal("Failed to render tasks", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(rows); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, row := range rows {
			fmt.Println(formatRow(row))
		}
	},
}

func formatRow(row display.Row) string {
	switch {
	case row.ShowImage:
		return fmt.Sprintf("%3d  %s  [photo: %s]", row.Position, row.Text, row.ImagePath)
	case row.ImagePath != "":
		return fmt.Sprintf("%3d  %s  [photo missing]", row.Position, row.Text)
	default:
		return fmt.Sprintf("%3d  %s", row.Position, row.Text)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
