// Package main renders one analyzed board for the console.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	dealcmd "github.com/fifthchair/tricklens/internal/cmd/deal"
	"github.com/fifthchair/tricklens/internal/platform/config"
)

func main() {
	cfg, err := dealcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dealcmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
