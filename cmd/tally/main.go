package main

import (
	"fmt"
	"os"

	"github.com/tally-dev/tally/internal/commands"
	"github.com/tally-dev/tally/internal/config"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
