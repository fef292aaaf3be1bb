package main

import (
	"os"

	"github.com/heavens-above/ghscripts/internal/cli"
	"github.com/heavens-above/ghscripts/internal/cli/shared"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(shared.ExitCode(err))
	}
}
