// Package mcp parses MCP command flags and serves the analysis tool
// surface over stdio.
package mcp

import (
	"context"
	"flag"

	"github.com/fifthchair/tricklens/internal/mcp/service"
	entrypoint "github.com/fifthchair/tricklens/internal/platform/cmd"
)

// Config holds MCP command configuration.
type Config struct {
	DBPath string `env:"TRICKLENS_MCP_DB_PATH"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite board archive served by the archive tools (empty runs without one)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server on stdio.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return service.Run(ctx, service.Config{DBPath: cfg.DBPath})
	})
}
