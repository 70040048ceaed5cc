package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/snaplist/internal/watch"
	"github.com/aretw0/snaplist/pkg/core"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the stored list and print it whenever another process changes it",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a := mustOpen(ctx)
		path, store, ok := a.watchTarget()
		if !ok {
			fatal("Cannot watch", fmt.Errorf("bucket is not file backed"))
		}

		reloaded := make(chan core.Event)
		w, err := watch.Follow(ctx, path, store, a.list, logger.Logger, func(e core.Event, err error) {
			if err != nil {
				return
			}
			select {
			case reloaded <- e:
			case <-ctx.Done():
			}
		})
		if err != nil {
			fatal("Failed to start watcher", err)
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = w.Stop(stopCtx)
		}()

		src := watch.NewSource(reloaded)
		if err := src.Start(ctx); err != nil {
			fatal("Failed to start event source", err)
		}

		fmt.Printf("Watching %s (Ctrl+C to stop)\n", path)
		for e := range src.Events() {
			fmt.Printf("%s %s, %d task(s)\n", time.Now().Format(time.TimeOnly), e, a.list.Len())
			for i, t := range a.list.Tasks() {
				fmt.Printf("%3d  %s\n", i, t)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
