// Package batch runs double-dummy cost analysis over exported deal
// CSVs. It reads a table of boards, analyzes each playable row on a
// worker pool, and writes the input back out with a DD_Analysis column
// carrying the per-card cost stream.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/fifthchair/tricklens/internal/analysis"
	"github.com/fifthchair/tricklens/internal/archive"
	"github.com/fifthchair/tricklens/internal/bridge"
	"github.com/fifthchair/tricklens/internal/platform/id"
)

var tracer = otel.Tracer("tricklens/batch")

const (
	defaultCheckpointInterval = 100
	progressEvery             = 10

	// errorPrefix marks analysis values that record a failure rather
	// than a cost stream. Downstream passes skip such rows.
	errorPrefix = "ERROR:"
)

// Config controls a batch run.
type Config struct {
	// Workers caps concurrent board analyses. Zero or negative means
	// one per CPU.
	Workers int
	// CheckpointInterval is how many completed boards trigger an
	// atomic rewrite of the output file. Zero means every 100.
	CheckpointInterval int
	// Mode selects cost attribution granularity.
	Mode analysis.Mode
	// Resume skips rows whose ref already has a usable analysis value
	// in the output file.
	Resume bool
	// Archive, when set, receives a run record and one board record
	// per successful analysis.
	Archive archive.Store
}

// Summary reports what a batch run did.
type Summary struct {
	Rows     int
	Analyzed int
	Errored  int
	Skipped  int
	RunID    string
}

// workItem is one analyzable row. Cardplay stays unparsed so malformed
// play strings surface as per-row errors instead of aborting the run.
type workItem struct {
	row      int
	ref      string
	boardNum string
	dealStr  string
	contract string
	declarer string
	cardplay string
	result   string
	players  [4]string
	board    analysis.Board
}

// Run analyzes every playable row of the input CSV and writes the
// augmented table to outputPath. Board-level failures are recorded as
// ERROR values in the output; file-level failures abort the run.
func Run(ctx context.Context, cfg Config, inputPath, outputPath string) (*Summary, error) {
	table, err := ReadTable(inputPath)
	if err != nil {
		return nil, err
	}
	cols := FindColumns(table.Header)
	if err := cols.RequireAnalysis(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "batch.analyze", trace.WithAttributes(
		attribute.String("batch.input", inputPath),
		attribute.Int("batch.rows", len(table.Rows)),
		attribute.String("batch.mode", cfg.Mode.String()),
	))
	defer span.End()

	out, analysisIdx := prepareOutput(table, cols)

	summary := &Summary{Rows: len(table.Rows)}

	var resumed map[string]string
	if cfg.Resume {
		resumed, err = loadExisting(outputPath)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "load resume state")
			return nil, err
		}
	}

	items := collectItems(table, cols, out, analysisIdx, resumed, summary)

	if cfg.Archive != nil {
		summary.RunID, err = id.NewID()
		if err != nil {
			return nil, fmt.Errorf("new run id: %w", err)
		}
		run := archive.Run{
			ID:        summary.RunID,
			InputPath: inputPath,
			Mode:      cfg.Mode.String(),
			StartedAt: time.Now(),
		}
		if err := cfg.Archive.SaveRun(ctx, run); err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
	}

	interval := cfg.CheckpointInterval
	if interval <= 0 {
		interval = defaultCheckpointInterval
	}

	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g.SetLimit(workers)

	for _, item := range items {
		item := item
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			value, ok := analyzeItem(gctx, cfg, item, summary.RunID)

			mu.Lock()
			defer mu.Unlock()
			out.Rows[item.row][analysisIdx] = value
			if ok {
				summary.Analyzed++
			} else {
				summary.Errored++
			}
			done++
			if done%progressEvery == 0 || done == len(items) {
				log.Printf("analyzed %d/%d boards", done, len(items))
			}
			if done%interval == 0 && done < len(items) {
				if err := WriteTable(outputPath, out); err != nil {
					return fmt.Errorf("checkpoint after %d boards: %w", done, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch aborted")
		return nil, err
	}

	if err := WriteTable(outputPath, out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write output")
		return nil, err
	}

	if cfg.Archive != nil {
		err := cfg.Archive.CompleteRun(ctx, summary.RunID,
			int64(summary.Analyzed), int64(summary.Errored), int64(summary.Skipped))
		if err != nil {
			return nil, fmt.Errorf("complete run: %w", err)
		}
	}

	span.SetAttributes(
		attribute.Int("batch.analyzed", summary.Analyzed),
		attribute.Int("batch.errored", summary.Errored),
		attribute.Int("batch.skipped", summary.Skipped),
	)
	return summary, nil
}

// prepareOutput copies the input table, padding every row so the
// analysis column is addressable. The column is appended when the input
// lacks it.
func prepareOutput(table *Table, cols Columns) (*Table, int) {
	header := append([]string(nil), table.Header...)
	analysisIdx := cols.Analysis
	if analysisIdx < 0 {
		header = append(header, analysisColumn)
		analysisIdx = len(header) - 1
	}

	rows := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		padded := make([]string, len(header))
		copy(padded, row)
		rows[i] = padded
	}
	return &Table{Header: header, Rows: rows}, analysisIdx
}

// collectItems builds the work list, pre-filling the output column for
// rows that resume, carry a previous value, or cannot be analyzed.
func collectItems(table *Table, cols Columns, out *Table, analysisIdx int, resumed map[string]string, summary *Summary) []workItem {
	var items []workItem
	for i, row := range table.Rows {
		ref := strings.TrimSpace(field(row, cols.Ref))

		if prior, ok := resumed[ref]; ok && ref != "" {
			out.Rows[i][analysisIdx] = prior
			summary.Skipped++
			continue
		}
		if prior := out.Rows[i][analysisIdx]; prior != "" && !strings.HasPrefix(prior, errorPrefix) {
			summary.Skipped++
			continue
		}

		cardplay := strings.TrimSpace(field(row, cols.Cardplay))
		if cardplay == "" || strings.HasPrefix(cardplay, errorPrefix) {
			out.Rows[i][analysisIdx] = ""
			summary.Skipped++
			continue
		}

		item, err := buildItem(i, ref, cardplay, row, cols)
		if err != nil {
			out.Rows[i][analysisIdx] = ""
			summary.Skipped++
			continue
		}
		items = append(items, item)
	}
	return items
}

// buildItem extracts and validates a row's deal, contract, and
// declarer. Hand columns must hold PBN hands; the same columns carry
// player names in some exports, which lack the '.' suit separators.
func buildItem(row int, ref, cardplay string, fields []string, cols Columns) (workItem, error) {
	north := strings.TrimSpace(field(fields, cols.Hands[bridge.North]))
	east := strings.TrimSpace(field(fields, cols.Hands[bridge.East]))
	south := strings.TrimSpace(field(fields, cols.Hands[bridge.South]))
	west := strings.TrimSpace(field(fields, cols.Hands[bridge.West]))
	if north == "" || east == "" || south == "" || west == "" {
		return workItem{}, fmt.Errorf("row %d: missing hands", row)
	}
	if !strings.Contains(north, ".") || !strings.Contains(south, ".") {
		return workItem{}, fmt.Errorf("row %d: hand columns do not hold PBN hands", row)
	}
	dealStr := fmt.Sprintf("N:%s %s %s %s", north, east, south, west)
	deal, err := bridge.ParseDeal(dealStr)
	if err != nil {
		return workItem{}, fmt.Errorf("row %d: %w", row, err)
	}

	contract := strings.TrimSpace(field(fields, cols.Contract))
	declarer := strings.TrimSpace(field(fields, cols.Declarer))
	if contract == "" || declarer == "" {
		return workItem{}, fmt.Errorf("row %d: missing contract or declarer", row)
	}
	strain, err := bridge.TrumpFromContract(contract)
	if err != nil {
		return workItem{}, fmt.Errorf("row %d: %w", row, err)
	}
	seat, err := bridge.ParseSeat(declarer)
	if err != nil {
		return workItem{}, fmt.Errorf("row %d: %w", row, err)
	}

	players := cols.players(fields)
	return workItem{
		row:      row,
		ref:      ref,
		boardNum: strings.TrimSpace(field(fields, cols.Board)),
		dealStr:  dealStr,
		contract: contract,
		declarer: declarer,
		cardplay: cardplay,
		result:   strings.TrimSpace(field(fields, cols.Result)),
		players:  players,
		board: analysis.Board{
			Deal:     deal,
			Strain:   strain,
			Declarer: seat,
			Players:  players,
		},
	}, nil
}

// analyzeItem runs one board under its own span. Failures are folded
// into an ERROR value so the batch keeps going; ok reports whether the
// value is a real cost stream.
func analyzeItem(ctx context.Context, cfg Config, item workItem, runID string) (value string, ok bool) {
	ctx, span := tracer.Start(ctx, "batch.board", trace.WithAttributes(
		attribute.String("board.ref", item.ref),
	))
	defer span.End()

	tricks, err := analysis.ParseCardplay(item.cardplay)
	if err == nil {
		item.board.Tricks = tricks
		var res *analysis.Result
		res, err = analysis.AnalyzeBoard(item.board, cfg.Mode)
		if err == nil {
			value = res.Stream()
			if cfg.Archive != nil {
				saveBoard(ctx, cfg.Archive, item, value, runID)
			}
			return value, true
		}
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, "board analysis failed")
	log.Printf("board %s: %v", item.ref, err)
	return fmt.Sprintf("%s %v", errorPrefix, err), false
}

// saveBoard archives one analyzed board. Archive failures are logged
// and do not fail the board; the CSV output is the source of truth.
func saveBoard(ctx context.Context, store archive.Store, item workItem, value, runID string) {
	board := archive.Board{
		Ref:         item.ref,
		BoardNum:    item.boardNum,
		Deal:        item.dealStr,
		Contract:    item.contract,
		Declarer:    item.declarer,
		Cardplay:    item.cardplay,
		PlayerNorth: item.players[bridge.North],
		PlayerEast:  item.players[bridge.East],
		PlayerSouth: item.players[bridge.South],
		PlayerWest:  item.players[bridge.West],
		Analysis:    value,
		RunID:       runID,
	}
	if err := store.SaveBoard(ctx, board); err != nil {
		log.Printf("archive board %s: %v", item.ref, err)
	}
}

// loadExisting reads a prior output file and returns usable analysis
// values keyed by ref. A missing file means a fresh start.
func loadExisting(path string) (map[string]string, error) {
	prior, err := ReadTable(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("load prior output: %w", err)
	}
	cols := FindColumns(prior.Header)
	if cols.Ref < 0 || cols.Analysis < 0 {
		return nil, nil
	}

	out := make(map[string]string)
	for _, row := range prior.Rows {
		ref := strings.TrimSpace(field(row, cols.Ref))
		value := field(row, cols.Analysis)
		if ref == "" || value == "" || strings.HasPrefix(value, errorPrefix) {
			continue
		}
		out[ref] = value
	}
	return out, nil
}
