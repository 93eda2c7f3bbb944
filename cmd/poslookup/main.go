package main

import (
	"fmt"
	"os"

	"github.com/interpretive-systems/poslookup/internal/cli"
	"github.com/interpretive-systems/poslookup/internal/logger"
)

func main() {
	exitCode := 0
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitCode = 1
	}

	logger.Sync()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
