// Package anonymize parses anonymize command flags and rewrites player
// names in a deal file with stable aliases.
package anonymize

import (
	"context"
	"errors"
	"flag"
	"log"
	"strings"

	anon "github.com/fifthchair/tricklens/internal/anonymize"
	"github.com/fifthchair/tricklens/internal/batch"
	entrypoint "github.com/fifthchair/tricklens/internal/platform/cmd"
)

// Config holds anonymize command configuration.
type Config struct {
	Input   string
	Output  string
	Map     string
	Key     string `env:"TRICKLENS_ANON_KEY"`
	Columns string `env:"TRICKLENS_ANON_COLUMNS" envDefault:"N,S,E,W"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Input, "input", cfg.Input, "input CSV file")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "output CSV file")
	fs.StringVar(&cfg.Key, "key", cfg.Key, "secret hashing key (env TRICKLENS_ANON_KEY keeps it out of shell history)")
	fs.StringVar(&cfg.Map, "map", cfg.Map, "comma-separated real=Alias overrides")
	fs.StringVar(&cfg.Columns, "columns", cfg.Columns, "comma-separated name columns to rewrite")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run rewrites the configured name columns and reports how many cells
// changed.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceAnonymize, func(context.Context) error {
		if cfg.Input == "" {
			return errors.New("input file is required")
		}
		if cfg.Output == "" {
			return errors.New("output file is required")
		}
		overrides, err := anon.ParseOverrides(cfg.Map)
		if err != nil {
			return err
		}
		a, err := anon.New(cfg.Key, overrides)
		if err != nil {
			return err
		}
		n, err := batch.AnonymizeFile(cfg.Input, cfg.Output, a, splitColumns(cfg.Columns))
		if err != nil {
			return err
		}
		log.Printf("rewrote %d names -> %s", n, cfg.Output)
		return nil
	})
}

func splitColumns(s string) []string {
	var out []string
	for _, col := range strings.Split(s, ",") {
		if col = strings.TrimSpace(col); col != "" {
			out = append(out, col)
		}
	}
	return out
}
