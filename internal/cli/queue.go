package cli

import (
	"github.com/spf13/cobra"

	"github.com/promptduel/promptduel-go/internal/api/request"
	"github.com/promptduel/promptduel-go/internal/api/response"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Join or leave the matchmaking queue",
}

var queueJoinCmd = &cobra.Command{
	Use:   "join",
	Short: "Join the matchmaking queue",
	Long: `Join the matchmaking queue. If another player is already waiting you
are matched immediately and a session is created; otherwise you wait in
the queue. Use 'pduel queue watch' to be notified when a match forms.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		player, err := playerID()
		if err != nil {
			return err
		}

		client := newClientFromFlags()
		var status response.QueueStatus
		if err := client.Post("/api/v1/queue", request.EnqueueRequest{PlayerID: player}, &status); err != nil {
			return err
		}
		return printOutput(status)
	},
}

var queueLeaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Leave the matchmaking queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		player, err := playerID()
		if err != nil {
			return err
		}

		client := newClientFromFlags()
		if err := client.Delete("/api/v1/queue/" + player); err != nil {
			return err
		}
		cmd.Println("Left the queue")
		return nil
	},
}

var queueWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream queue events until a match is found",
	Long: `Stream queue events for this player. Prints a match-found event when
an opponent joins and the session is created. Press Ctrl+C to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		player, err := playerID()
		if err != nil {
			return err
		}
		return streamEvents(cmd, "/api/v1/queue/"+player+"/events")
	},
}

func init() {
	queueCmd.AddCommand(queueJoinCmd)
	queueCmd.AddCommand(queueLeaveCmd)
	queueCmd.AddCommand(queueWatchCmd)
	rootCmd.AddCommand(queueCmd)
}
