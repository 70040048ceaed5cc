package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/snaplist/pkg/core"
)

var (
	editPhoto      string
	editClearPhoto bool
)

var editCmd = &cobra.Command{
	Use:   "edit <position> [description]",
	Short: "Change the description or photo of a task",
	Long: `Edit the task at the given position (0-based).
Without a description the current one is kept. The photo is kept unless
--photo or --clear-photo is given.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if editPhoto != "" && editClearPhoto {
			fatal("Invalid flags", fmt.Errorf("--photo and --clear-photo are mutually exclusive"))
		}

		pos, err := parsePosition(args[0])
		if err != nil {
			fatal("Invalid argument", err)
		}

		ctx := context.Background()
		a := mustOpen(ctx)

		task, err := a.list.At(pos)
		if err != nil {
			fatal("Failed to edit task", err)
		}

		form := core.NewEditForm(task, pos)
		if len(args) > 1 {
			form.Description = strings.Join(args[1:], " ")
		}
		switch {
		case editClearPhoto:
			form.ClearPhoto()
		case editPhoto != "":
			a.attachPhoto(ctx, form, editPhoto)
		}

		if _, err := a.list.Submit(ctx, form); err != nil {
			fatal("Failed to edit task", err)
		}

		task, _ = a.list.At(pos)
		fmt.Printf("Updated %d: %s\n", pos, task)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editPhoto, "photo", "", "Image file to attach as the new photo")
	editCmd.Flags().BoolVar(&editClearPhoto, "clear-photo", false, "Remove the photo from the task")
}
