package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/promptduel/promptduel-go/internal/api/response"
)

// printOutput renders a result in the format selected by --output.
// Known types get a human-readable text rendering; everything falls
// back to JSON.
func printOutput(v any) error {
	switch flagOutput {
	case "json":
		return printJSON(v)
	case "text":
		return printText(v)
	default:
		return fmt.Errorf("unknown output format %q", flagOutput)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printText(v any) error {
	switch t := v.(type) {
	case response.QueueStatus:
		printQueueStatus(t)
	case response.TurnResult:
		printTurnResult(t)
	case response.SessionState:
		printSessionState(t)
	case response.Health:
		fmt.Printf("Server status: %s\n", t.Status)
	default:
		return printJSON(v)
	}
	return nil
}

func printQueueStatus(status response.QueueStatus) {
	if status.Matched {
		fmt.Printf("Matched against %s\n", status.OpponentID)
		fmt.Printf("Session: %s\n", status.SessionID)
		return
	}
	fmt.Printf("Waiting for an opponent (position %d in queue)\n", status.Position)
}

func printTurnResult(res response.TurnResult) {
	fmt.Printf("[turn %d] You: %s\n", res.Turn.TurnNumber, res.Turn.Message)
	fmt.Printf("[turn %d] AI:  %s\n", res.Turn.TurnNumber, res.Turn.Reply)
	switch {
	case res.IsGameComplete:
		fmt.Println("The game is over. Run 'pduel game state' for the result.")
	case res.IsTransition:
		fmt.Println("That was the final defense turn. The attack phase starts shortly.")
	default:
		fmt.Printf("Turns used this phase: %d\n", res.NewCount)
	}
}

func printSessionState(state response.SessionState) {
	fmt.Printf("Session: %s\n", state.SessionID)
	if state.Spectating {
		fmt.Println("You are not a participant in this session.")
		return
	}

	fmt.Printf("Phase: %s\n", strings.ToLower(state.Phase))
	fmt.Printf("Character: %s\n", state.Character)
	fmt.Printf("Turns: you %d, opponent %d\n", state.MyTurnCount, state.OpponentTurnCount)
	if state.IsTransitioning {
		fmt.Printf("Phase transition in progress (%d ticks remaining)\n", state.TransitionRemaining)
	}
	if state.OpponentDefenseSummary != "" {
		fmt.Printf("Opponent persona: %s\n", state.OpponentDefenseSummary)
	}

	if len(state.Turns) > 0 {
		fmt.Println()
		for _, turn := range state.Turns {
			fmt.Printf("  %2d> %s\n", turn.TurnNumber, turn.Message)
			fmt.Printf("      %s\n", turn.Reply)
		}
	}

	if state.IsComplete {
		fmt.Println()
		fmt.Printf("Game over (%s). Winner: %s\n", state.EndReason, state.WinnerID)
	}
}
