// Package main is the entry point for the beostex CLI.
package main

import (
	"os"

	"github.com/jmylchreest/beostex/cmd/beostex/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
