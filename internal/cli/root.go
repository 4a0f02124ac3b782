package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagServer   string
	flagPlayerID string
	flagOutput   string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "pduel",
	Short: "Command-line client for the promptduel server",
	Long: `pduel is a command-line client for the promptduel server.

It lets you join the matchmaking queue, play out defense and attack
turns against your opponent's persona, and stream game events live.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if flagVerbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
		slog.SetDefault(logger)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", "", "server base URL (default $PDUEL_SERVER or http://localhost:8080)")
	rootCmd.PersistentFlags().StringVarP(&flagPlayerID, "player", "p", "", "player identifier (default $PDUEL_PLAYER)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "output format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
