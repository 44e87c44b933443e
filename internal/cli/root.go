package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "tastequest",
	Short: "Swipe-driven taste profiles for nearby food",
	Long: "Tastequest learns what you like from quick verdicts on nearby places, " +
		"rations decisions with an energy pool and reveals hidden spots when you get close.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(deckCmd)
	rootCmd.AddCommand(decideCmd)
	rootCmd.AddCommand(unlockCmd)
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(historyCmd)
}
