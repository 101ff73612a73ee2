// Package analyzer parses analyzer command flags and runs the
// double-dummy cost analysis pass over an exported deal file.
package analyzer

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/fifthchair/tricklens/internal/analysis"
	sqlitearchive "github.com/fifthchair/tricklens/internal/archive/sqlite"
	"github.com/fifthchair/tricklens/internal/batch"
	entrypoint "github.com/fifthchair/tricklens/internal/platform/cmd"
)

// Config holds analyzer command configuration.
type Config struct {
	Input              string
	Output             string
	Resume             bool
	Workers            int    `env:"TRICKLENS_ANALYZER_WORKERS"`
	CheckpointInterval int    `env:"TRICKLENS_ANALYZER_CHECKPOINT_INTERVAL"`
	Mode               string `env:"TRICKLENS_ANALYZER_MODE"`
	DBPath             string `env:"TRICKLENS_ANALYZER_DB_PATH"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Input, "input", cfg.Input, "input CSV file")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "output CSV file")
	fs.BoolVar(&cfg.Resume, "resume", cfg.Resume, "keep analysis values already present in the output file")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent board analyses (0 = one per CPU)")
	fs.IntVar(&cfg.CheckpointInterval, "checkpoint", cfg.CheckpointInterval, "boards between checkpoint writes (0 = every 100)")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "cost attribution mode: mid-trick or trick-boundary")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite archive path (empty disables archiving)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the analysis pass.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceAnalyzer, func(ctx context.Context) error {
		if cfg.Input == "" {
			return errors.New("input file is required")
		}
		if cfg.Output == "" {
			return errors.New("output file is required")
		}
		mode, err := analysis.ParseMode(cfg.Mode)
		if err != nil {
			return err
		}

		batchCfg := batch.Config{
			Workers:            cfg.Workers,
			CheckpointInterval: cfg.CheckpointInterval,
			Mode:               mode,
			Resume:             cfg.Resume,
		}
		if cfg.DBPath != "" {
			store, err := sqlitearchive.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open archive: %w", err)
			}
			defer store.Close()
			batchCfg.Archive = store
		}

		summary, err := batch.Run(ctx, batchCfg, cfg.Input, cfg.Output)
		if err != nil {
			return err
		}
		log.Printf("analyzed %d of %d rows (%d errors, %d skipped) -> %s",
			summary.Analyzed, summary.Rows, summary.Errored, summary.Skipped, cfg.Output)
		return nil
	})
}
