package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cshub",
	Short: "Conversational CS2 skin price, inventory and profile lookups",
	Long: `CS Hub is a chat bot back-end for Counter-Strike 2 players. It keeps a
merged in-memory catalog of known items, answers skin price searches,
pages through public Steam inventories, and looks up profiles and live
player counts through the Steam web APIs.`,
}

func Execute() error {
	// A local .env may carry STEAM_API_KEY during development. Missing files
	// are fine.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".cshub.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
