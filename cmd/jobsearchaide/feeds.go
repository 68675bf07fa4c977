package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "List all configured sources",
	Long:  "Reads the config and prints a table of all configured job sources.",
	RunE:  runFeeds,
}

func init() {
	rootCmd.AddCommand(feedsCmd)
}

func runFeeds(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-30s %-8s %s\n", "Source", "Kind", "Status")
	fmt.Println(strings.Repeat("─", 48))

	enabled, disabled := 0, 0
	printRow := func(name, kind string, on bool) {
		status := "enabled"
		if on {
			enabled++
		} else {
			status = "disabled"
			disabled++
		}
		fmt.Printf("%-30s %-8s %s\n", name, kind, status)
	}

	for _, feed := range cfg.Sources.RSSFeeds {
		printRow(feed.Name, "rss", feed.Enabled)
	}
	printRow("remoteok.io", "api", cfg.Sources.RemoteOK.Enabled)

	fmt.Printf("\nTotal: %d sources (%d enabled, %d disabled)\n", enabled+disabled, enabled, disabled)
	return nil
}
