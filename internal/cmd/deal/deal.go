// Package deal parses deal command flags and renders one analyzed
// board: the hand diagram, the cardplay with per-card DD costs, and
// the duplicate score.
package deal

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fifthchair/tricklens/internal/analysis"
	"github.com/fifthchair/tricklens/internal/batch"
	"github.com/fifthchair/tricklens/internal/bridge"
	entrypoint "github.com/fifthchair/tricklens/internal/platform/cmd"
	"github.com/fifthchair/tricklens/internal/report"
)

// Config holds deal command configuration.
type Config struct {
	Input string
	Row   int
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Input, "input", cfg.Input, "analyzed CSV file")
	fs.IntVar(&cfg.Row, "row", 1, "data row to render, counting from 1")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run renders the requested row to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceDeal, func(context.Context) error {
		if cfg.Input == "" {
			return errors.New("input file is required")
		}
		table, err := batch.ReadTable(cfg.Input)
		if err != nil {
			return err
		}
		if cfg.Row < 1 || cfg.Row > len(table.Rows) {
			return fmt.Errorf("row %d out of range, file has %d data rows", cfg.Row, len(table.Rows))
		}
		view, err := buildView(table.Header, table.Rows[cfg.Row-1])
		if err != nil {
			return fmt.Errorf("row %d: %w", cfg.Row, err)
		}
		report.WriteBoard(out, view)
		return nil
	})
}

// buildView decodes one data row into a renderable board. The analysis
// column is optional; rows that recorded an analysis error render
// without cost cells.
func buildView(header, row []string) (report.BoardView, error) {
	cols := batch.FindColumns(header)
	cell := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	hands := [4]string{}
	for _, seat := range bridge.Seats {
		if hands[seat] = cell(cols.Hands[seat]); hands[seat] == "" {
			return report.BoardView{}, fmt.Errorf("missing %s hand", seat.Name())
		}
	}
	deal, err := bridge.ParseDeal(fmt.Sprintf("N:%s %s %s %s",
		hands[bridge.North], hands[bridge.East], hands[bridge.South], hands[bridge.West]))
	if err != nil {
		return report.BoardView{}, err
	}

	declarer, err := bridge.ParseSeat(cell(cols.Declarer))
	if err != nil {
		return report.BoardView{}, err
	}

	view := report.BoardView{
		Ref:      cell(cols.Ref),
		BoardNum: cell(cols.Board),
		Deal:     deal,
		Contract: cell(cols.Contract),
		Declarer: declarer,
		Result:   cell(cols.Result),
		Players: [4]string{
			bridge.North: cell(cols.Names[bridge.North]),
			bridge.East:  cell(cols.Names[bridge.East]),
			bridge.South: cell(cols.Names[bridge.South]),
			bridge.West:  cell(cols.Names[bridge.West]),
		},
	}
	view.Score = scoreLine(view.Contract, declarer, view.BoardNum, view.Result)

	if cardplay := cell(cols.Cardplay); cardplay != "" {
		if view.Tricks, err = analysis.ParseCardplay(cardplay); err != nil {
			return report.BoardView{}, err
		}
	}
	if value := cell(cols.Analysis); value != "" {
		if costs, err := analysis.ParseCostStream(value); err == nil {
			view.Costs = costs
		}
	}
	return view, nil
}

// scoreLine formats the duplicate score for a board, deriving the
// vulnerability from the board number under the standard rotation.
// Results that do not read as relative tricks yield no score.
func scoreLine(contract string, declarer bridge.Seat, boardNum, result string) string {
	rel, err := bridge.ParseResult(result)
	if err != nil || rel < -13 || rel > 6 {
		return ""
	}
	con, err := bridge.ParseContract(contract)
	if err != nil {
		return ""
	}
	vul := bridge.NoneVul
	if n, err := strconv.Atoi(boardNum); err == nil && n > 0 {
		vul = bridge.VulnerabilityForBoard(n)
	}
	return fmt.Sprintf("%+d (%s vul)", con.Score(rel, vul.IsVulnerable(declarer)), vul)
}
