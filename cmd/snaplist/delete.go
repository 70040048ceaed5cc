package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <position>",
	Short: "Delete a task",
	Long:  `Delete the task at the given position (0-based). Later tasks move up by one.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pos, err := parsePosition(args[0])
		if err != nil {
			fatal("Invalid argument", err)
		}

		ctx := context.Background()
		a := mustOpen(ctx)

		task, err := a.list.At(pos)
		if err != nil {
			fatal("Failed to delete task", err)
		}
		if err := a.list.Remove(ctx, pos); err != nil {
			fatal("Failed to delete task", err)
		}

		fmt.Printf("Deleted %d: %s\n", pos, task.Description)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
