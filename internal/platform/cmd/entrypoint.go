// Package cmd holds the shared startup path for tricklens commands:
// environment-backed flag parsing and telemetry-wrapped execution.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fifthchair/tricklens/internal/platform/config"
	"github.com/fifthchair/tricklens/internal/platform/otel"
)

// Service names used for telemetry and log prefixes.
const (
	ServiceAnalyzer  = "analyzer"
	ServiceAnonymize = "anonymize"
	ServiceDeal      = "deal"
	ServiceMCP       = "mcp"
	ServiceReport    = "report"
)

// otelShutdownTimeout bounds the flush of pending spans at exit.
const otelShutdownTimeout = 5 * time.Second

// ParseConfig loads environment defaults into cfg. Commands register
// flags afterwards, so flags override the environment.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags registered on fs.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry sets up trace export for service, executes run, and
// flushes telemetry before returning run's error.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}

	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Printf("%s otel shutdown: %v", service, err)
		}
	}()
	return run(ctx)
}
