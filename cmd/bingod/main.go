package main

import (
	"os"

	"github.com/groblegark/bingod/internal/ui"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	jsonOutput bool
	noColor    bool
)

func defaultDataDir() string {
	if s := os.Getenv("BINGO_DATA_DIR"); s != "" {
		return s
	}
	return "data"
}

var rootCmd = &cobra.Command{
	Use:   "bingod <command>",
	Short: "Bingo event server and local event management",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor || !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "event storage directory")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	cobra.EnableCommandSorting = false

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(useCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
