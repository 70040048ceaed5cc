package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/snaplist/pkg/core"
)

var addPhoto string

var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Add a task to the end of the list",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := mustOpen(ctx)

		form := core.NewAddForm()
		form.Description = strings.Join(args, " ")
		if addPhoto != "" {
			a.attachPhoto(ctx, form, addPhoto)
		}

		pos, err := a.list.Submit(ctx, form)
		if err != nil {
			fatal("Failed to add task", err)
		}

		task, _ := a.list.At(pos)
		fmt.Printf("Added %d: %s\n", pos, task)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addPhoto, "photo", "", "Image file to attach as the task's photo")
}
