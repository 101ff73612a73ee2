// Package main rewrites player names in a deal file with stable aliases.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	anonymizecmd "github.com/fifthchair/tricklens/internal/cmd/anonymize"
	"github.com/fifthchair/tricklens/internal/platform/config"
)

func main() {
	cfg, err := anonymizecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := anonymizecmd.Run(ctx, cfg); err != nil {
		config.Exitf("Error: %v", err)
	}
}
