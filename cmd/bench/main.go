package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/snaplist"
)

func main() {
	count := flag.Int("count", 1000, "Number of tasks to add")
	format := flag.String("format", "json", "Bucket format (json or yaml)")
	keep := flag.Bool("keep", false, "Keep the benchmark data dir after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "snaplist_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := context.Background()

	list, err := snaplist.New(ctx, benchDir, snaplist.WithFormat(*format), snaplist.WithLogger(logger))
	if err != nil {
		panic(err)
	}

	// Every add rewrites the whole list, so cost grows with its length.
	fmt.Printf("Adding %d tasks in %s...\n", *count, benchDir)
	startAdd := time.Now()
	for i := 0; i < *count; i++ {
		if _, err := list.Add(ctx, snaplist.NewTask(fmt.Sprintf("Task %d", i), "")); err != nil {
			panic(err)
		}
	}
	addDuration := time.Since(startAdd)

	// Cold open: a new instance reads and validates the stored list.
	startOpen := time.Now()
	reopened, err := snaplist.New(ctx, benchDir, snaplist.WithFormat(*format), snaplist.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	openDuration := time.Since(startOpen)

	startRemove := time.Now()
	for reopened.Len() > 0 {
		if err := reopened.Remove(ctx, 0); err != nil {
			panic(err)
		}
	}
	removeDuration := time.Since(startRemove)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d tasks, %s):\n", *count, *format)
	fmt.Printf("  Add:    %v (%v/op)\n", addDuration, addDuration/time.Duration(max(*count, 1)))
	fmt.Printf("  Open:   %v\n", openDuration)
	fmt.Printf("  Remove: %v (%v/op)\n", removeDuration, removeDuration/time.Duration(max(*count, 1)))
	fmt.Printf("--------------------------------------------------\n")
}
