package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptduel/promptduel-go/internal/api/request"
	"github.com/promptduel/promptduel-go/internal/api/response"
)

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Play turns and inspect game sessions",
}

var gameSayCmd = &cobra.Command{
	Use:   "say <session-id> <message...>",
	Short: "Submit a turn to a session",
	Long: `Submit a turn. During the defense phase the message goes to your own
AI persona; during the attack phase it interrogates your opponent's
persona. All arguments after the session ID are joined into one message.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		player, err := playerID()
		if err != nil {
			return err
		}
		sessionID := args[0]
		message := strings.Join(args[1:], " ")

		client := newClientFromFlags()
		var result response.TurnResult
		err = client.Post(
			fmt.Sprintf("/api/v1/sessions/%s/turns", sessionID),
			request.SubmitTurnRequest{PlayerID: player, Message: message},
			&result,
		)
		if err != nil {
			return err
		}
		return printOutput(result)
	},
}

var gameStateCmd = &cobra.Command{
	Use:   "state <session-id>",
	Short: "Show your view of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		player, err := playerID()
		if err != nil {
			return err
		}

		client := newClientFromFlags()
		var state response.SessionState
		err = client.Get(fmt.Sprintf("/api/v1/sessions/%s?player_id=%s", args[0], player), &state)
		if err != nil {
			return err
		}
		return printOutput(state)
	},
}

var gameForfeitCmd = &cobra.Command{
	Use:   "forfeit <session-id>",
	Short: "Forfeit a session, handing the win to your opponent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		player, err := playerID()
		if err != nil {
			return err
		}

		client := newClientFromFlags()
		err = client.Post(
			fmt.Sprintf("/api/v1/sessions/%s/forfeit", args[0]),
			request.ForfeitRequest{PlayerID: player},
			nil,
		)
		if err != nil {
			return err
		}
		cmd.Println("Forfeited")
		return nil
	},
}

var gameWatchCmd = &cobra.Command{
	Use:   "watch <session-id>",
	Short: "Stream live events from a session",
	Long: `Stream live events from a session over SSE. Events include
turn-submitted, transition-tick, transition-ended and game-complete.
Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		player, err := playerID()
		if err != nil {
			return err
		}
		path := fmt.Sprintf("/api/v1/sessions/%s/events?player_id=%s", args[0], player)
		return streamEvents(cmd, path)
	},
}

func init() {
	gameCmd.AddCommand(gameSayCmd)
	gameCmd.AddCommand(gameStateCmd)
	gameCmd.AddCommand(gameForfeitCmd)
	gameCmd.AddCommand(gameWatchCmd)
	rootCmd.AddCommand(gameCmd)
}
