package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kiri-osint/CS2-Info-Hub-Bot/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize cshub configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the bot and generates a .cshub.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
