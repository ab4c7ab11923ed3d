// Package main provides the CLI for hashassets, a content-addressed asset renamer.
package main

import (
	"os"

	"github.com/leapstack-labs/hashassets/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
