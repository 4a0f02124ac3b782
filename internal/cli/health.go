package cli

import (
	"github.com/spf13/cobra"

	"github.com/promptduel/promptduel-go/internal/api/response"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClientFromFlags()
		var health response.Health
		if err := client.Get("/api/v1/health", &health); err != nil {
			return err
		}
		return printOutput(health)
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
