package main

import (
	"fmt"
	"os"

	"github.com/Strum355/log"
	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/moodtune/internal/config"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "moodtune",
	Short: "Mood-driven music player backend",
	Long: `Moodtune serves mood-filtered song listings, per-user playlists, favorites,
history and statistics, and a server-side player driven by voice and face input.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		production, _ := cmd.Flags().GetBool("production")
		initLogger(production)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "moodtune "+version)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(faceCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().BoolP("production", "p", false, "enables production with json logging")
	rootCmd.PersistentFlags().String("config", "", "path to a moodtune.yaml config file")
}

func initLogger(production bool) {
	if production {
		log.InitJSONLogger(&log.Config{Output: os.Stdout})
	} else {
		log.InitSimpleLogger(&log.Config{Output: os.Stdout})
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(file)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
