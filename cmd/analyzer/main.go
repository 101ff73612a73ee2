package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	analyzercmd "github.com/fifthchair/tricklens/internal/cmd/analyzer"
)

// main runs the double-dummy analysis pass over a deal file.
func main() {
	cfg, err := analyzercmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[ANALYZER] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := analyzercmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to analyze: %v", err)
	}
}
