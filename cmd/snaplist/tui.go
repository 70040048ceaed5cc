package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/snaplist/internal/ui"
)

var tuiWatch bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and edit the list interactively",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a := mustOpen(ctx)

		opts := ui.Options{
			PhotoDir:    cfg.PhotoDir,
			AllowCamera: cfg.AllowCamera,
			Logger:      logger.Logger,
		}
		if path, store, ok := a.watchTarget(); ok {
			opts.Store = store
			opts.BucketPath = path
			opts.Watch = tuiWatch
		}

		if err := ui.Run(ctx, a.list, opts); err != nil {
			fatal("TUI failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().BoolVar(&tuiWatch, "watch", false, "Reload when another process changes the list")
}
