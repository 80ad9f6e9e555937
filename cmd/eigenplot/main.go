// Package main is the entry point for the eigenplot CLI.
package main

import (
	"os"

	"github.com/user/eigenplot_go/cmd/eigenplot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
