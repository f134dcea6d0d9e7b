// Package main provides the entry point for the plaindex CLI.
package main

import (
	"os"

	"github.com/plainhq/plaindex/cmd/plaindex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
