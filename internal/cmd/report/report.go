// Package report parses report command flags and renders aggregated
// error-rate statistics from an analyzed deal file or a board archive.
package report

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	sqlitearchive "github.com/fifthchair/tricklens/internal/archive/sqlite"
	"github.com/fifthchair/tricklens/internal/batch"
	entrypoint "github.com/fifthchair/tricklens/internal/platform/cmd"
	statsreport "github.com/fifthchair/tricklens/internal/report"
	"github.com/fifthchair/tricklens/internal/stats"
)

// Config holds report command configuration.
type Config struct {
	Input   string
	Output  string
	DBPath  string `env:"TRICKLENS_REPORT_DB_PATH"`
	Top     int    `env:"TRICKLENS_REPORT_TOP" envDefault:"10"`
	Players string `env:"TRICKLENS_REPORT_PLAYERS"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Input, "input", cfg.Input, "analyzed CSV file")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "also export detailed stats to this CSV file")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "read analyzed boards from this archive instead of a CSV file")
	fs.IntVar(&cfg.Top, "top", cfg.Top, "players shown in the console table (0 = all)")
	fs.StringVar(&cfg.Players, "players", cfg.Players, "comma-separated subject players (default: the two with most deals)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SplitPlayers parses the -players flag into a subject list. Blank
// entries are dropped so trailing commas are harmless.
func SplitPlayers(s string) []string {
	var out []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Run aggregates the configured source and writes the console report to
// out, plus the CSV export when configured.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceReport, func(ctx context.Context) error {
		agg, err := aggregate(ctx, cfg)
		if err != nil {
			return err
		}
		subjects := statsreport.Subjects(agg, SplitPlayers(cfg.Players))

		statsreport.WriteStats(out, agg, subjects, cfg.Top)

		if cfg.Output != "" {
			f, err := os.Create(cfg.Output)
			if err != nil {
				return fmt.Errorf("create export: %w", err)
			}
			if err := statsreport.WriteStatsCSV(f, agg, subjects); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close export: %w", err)
			}
			log.Printf("exported stats -> %s", cfg.Output)
		}
		return nil
	})
}

// aggregate reads player statistics from the analyzed CSV or, when a
// database path is configured instead, from the board archive.
func aggregate(ctx context.Context, cfg Config) (*stats.Aggregator, error) {
	switch {
	case cfg.Input != "" && cfg.DBPath != "":
		return nil, errors.New("use an input file or a database path, not both")
	case cfg.Input != "":
		return batch.LoadStats(cfg.Input)
	case cfg.DBPath != "":
		store, err := sqlitearchive.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open archive: %w", err)
		}
		defer store.Close()
		return batch.LoadArchiveStats(ctx, store)
	default:
		return nil, errors.New("input file or database path is required")
	}
}
