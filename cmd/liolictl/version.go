package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/lioli/bill"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("liolictl %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		fmt.Printf("  format: %s v%d.%d\n", bill.Magic, bill.Version[0], bill.Version[1])
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
