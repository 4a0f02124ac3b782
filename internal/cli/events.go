package cli

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
)

// streamEvents connects to an SSE endpoint and prints each event as it
// arrives, until the stream closes or the user interrupts.
func streamEvents(cmd *cobra.Command, path string) error {
	client := newClientFromFlags()
	body, err := client.Stream(path)
	if err != nil {
		return err
	}
	defer body.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)
	go func() {
		<-interrupt
		body.Close()
	}()

	cmd.Println("Connected, waiting for events...")

	scanner := bufio.NewScanner(body)
	var eventName string
	var dataLines []string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if eventName != "" || len(dataLines) > 0 {
				printEvent(eventName, strings.Join(dataLines, "\n"))
			}
			eventName = ""
			dataLines = nil
		case strings.HasPrefix(line, "event:"):
			eventName = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			dataLines = append(dataLines, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		case strings.HasPrefix(line, ":"):
			// Keepalive comment, ignore.
		}
	}
	if err := scanner.Err(); err != nil && !strings.Contains(err.Error(), "use of closed") {
		return fmt.Errorf("reading event stream: %w", err)
	}
	return nil
}

func printEvent(name, data string) {
	if name == "" {
		name = "message"
	}
	fmt.Printf("[%s] %s\n", name, data)
}
