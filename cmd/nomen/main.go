// Package main provides the nomen command line interface.
package main

import (
	"os"

	"github.com/nomenlabs/nomen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
