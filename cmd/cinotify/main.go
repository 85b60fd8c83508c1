package main

import (
	"os"

	"github.com/codex-k8s/cinotify/internal/cli"
	"github.com/codex-k8s/cinotify/internal/logging"
)

// main is the entry point for the cinotify CLI binary.
func main() {
	logger := logging.NewLogger(os.Stderr, logging.LevelInfo)
	if err := cli.Execute(os.Args[1:], logger); err != nil {
		cli.ReportFailure(os.Stdout, logger, err)
		os.Exit(1)
	}
}
