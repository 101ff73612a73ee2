// Package main renders error-rate statistics from an analyzed deal
// file or a board archive.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	reportcmd "github.com/fifthchair/tricklens/internal/cmd/report"
	"github.com/fifthchair/tricklens/internal/platform/config"
)

func main() {
	cfg, err := reportcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := reportcmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
