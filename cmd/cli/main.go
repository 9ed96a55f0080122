// Package main is the entry point for the terrafin CLI.
package main

import (
	"os"

	"terrafin/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
