package main

import (
	"os"

	"dcf-analyzer/cmd/dcf/commands"
)

// main is the entry point for the DCF analyzer CLI:
// go run ./cmd/dcf [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
