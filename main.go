package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/rise-and-shine/pipeline/cli"
)

func main() {
	if err := cli.NewRootCommand(cli.LoadConfig).Execute(); err != nil {
		_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
