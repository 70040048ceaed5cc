package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/snaplist/pkg/photo"
)

var (
	pruneDryRun bool
	pruneForce  bool
)

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Manage task photos",
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete photos no task refers to",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := mustOpen(ctx)

		if backups := a.corruptBackups(ctx); len(backups) > 0 && !pruneForce {
			fatal("Refusing to prune while recovered data is set aside (inspect it, then rerun with --force)",
				fmt.Errorf("backups: %s", strings.Join(backups, ", ")))
		}

		var referenced []string
		for _, t := range a.list.Tasks() {
			if t.HasImage() {
				referenced = append(referenced, t.ImagePath)
			}
		}

		removed, err := photo.Prune(cfg.PhotoDir, referenced, pruneDryRun)
		if err != nil {
			fatal("Failed to prune photos", err)
		}

		verb := "Removed"
		if pruneDryRun {
			verb = "Would remove"
		}
		for _, p := range removed {
			fmt.Printf("%s %s\n", verb, p)
		}
		fmt.Printf("%s %d photo(s) from %s\n", verb, len(removed), cfg.PhotoDir)
	},
}

func init() {
	rootCmd.AddCommand(photoCmd)
	photoCmd.AddCommand(pruneCmd)
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "Only list what would be removed")
	pruneCmd.Flags().BoolVar(&pruneForce, "force", false, "Prune even when a corrupt list backup exists")
}
