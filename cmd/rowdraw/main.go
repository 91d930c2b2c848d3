// Package main provides the rowdraw CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/rowdraw/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
