package cli

import (
	"fmt"
	"os"
)

const defaultServerURL = "http://localhost:8080"

// serverURL resolves the server base URL from the flag, the
// PDUEL_SERVER environment variable, or the built-in default.
func serverURL() string {
	if flagServer != "" {
		return flagServer
	}
	if env := os.Getenv("PDUEL_SERVER"); env != "" {
		return env
	}
	return defaultServerURL
}

// playerID resolves the caller's player identifier from the flag or
// the PDUEL_PLAYER environment variable. Commands that act as a player
// require one.
func playerID() (string, error) {
	if flagPlayerID != "" {
		return flagPlayerID, nil
	}
	if env := os.Getenv("PDUEL_PLAYER"); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("no player ID set: pass --player or set PDUEL_PLAYER")
}

func newClientFromFlags() *Client {
	return NewClient(serverURL())
}
