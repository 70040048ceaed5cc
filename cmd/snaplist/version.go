package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/snaplist"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of snaplist",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("snaplist version %s\n", strings.TrimSpace(snaplist.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
