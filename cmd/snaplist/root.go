package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/snaplist/internal/config"
	"github.com/aretw0/snaplist/internal/logging"
	"github.com/aretw0/snaplist/internal/platform"
)

var (
	verbose    bool
	dataDir    string
	configPath string
	logFile    string
	journal    bool

	// set by PersistentPreRun
	cfg    *config.Config
	logger *logging.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "snaplist",
	Short: "A persisted task list with optional photos",
	Long: `snaplist keeps a list of tasks, each with an optional photo.
The whole list is saved to a small key-value bucket after every change.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		wd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		cfg, err = config.Load(configPath, wd, platform.DefaultDataDir(wd))
		if err != nil {
			fatal("Failed to load config", err)
		}
		if dataDir != "" {
			cfg.SetDataDir(dataDir)
		}
		if logFile != "" {
			cfg.LogFile = logFile
		}
		if journal {
			cfg.Journal = true
		}

		level, _ := config.ParseLevel(cfg.LogLevel)
		if verbose {
			level = slog.LevelDebug
		}

		logger, err = logging.Setup(logging.Options{
			Level:   level,
			File:    cfg.LogFile,
			Journal: cfg.Journal,
		})
		if err != nil {
			fatal("Failed to set up logging", err)
		}
		slog.SetDefault(logger.Logger)

		if cfg.Source != "" {
			logger.Debug("config loaded", "file", cfg.Source)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Close()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the bucket (default: .snaplist in the project root)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: snaplist.toml found upwards)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write JSON logs to this file")
	rootCmd.PersistentFlags().BoolVar(&journal, "journal", false, "Also log to the systemd journal")
}
