// Package main provides the CLI for the CineAI ranker.
package main

import (
	"os"

	"github.com/leapstack-labs/cineai/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
