// Package sqlite provides the SQLite-backed archive store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fifthchair/tricklens/internal/archive"
	"github.com/fifthchair/tricklens/internal/archive/sqlite/migrations"
	"github.com/fifthchair/tricklens/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store provides SQLite-backed persistence for analyzer results.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := store.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) runMigrations() error {
	return sqlitemigrate.Apply(s.sqlDB, migrations.FS)
}

// SaveRun persists a run record.
func (s *Store) SaveRun(ctx context.Context, run archive.Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(run.ID) == "" {
		return fmt.Errorf("run id is required")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	var finishedAt int64
	if !run.FinishedAt.IsZero() {
		finishedAt = toMillis(run.FinishedAt)
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO runs (
	id, input_path, mode, started_at, finished_at, analyzed, errored, skipped
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	input_path = excluded.input_path,
	mode = excluded.mode,
	started_at = excluded.started_at,
	finished_at = excluded.finished_at,
	analyzed = excluded.analyzed,
	errored = excluded.errored,
	skipped = excluded.skipped
`,
		run.ID,
		run.InputPath,
		run.Mode,
		toMillis(run.StartedAt),
		finishedAt,
		run.Analyzed,
		run.Errored,
		run.Skipped,
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// CompleteRun stamps a run finished with its final counters.
func (s *Store) CompleteRun(ctx context.Context, id string, analyzed, errored, skipped int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("run id is required")
	}

	res, err := s.sqlDB.ExecContext(ctx, `
UPDATE runs
SET finished_at = ?, analyzed = ?, errored = ?, skipped = ?
WHERE id = ?
`,
		toMillis(time.Now().UTC()),
		analyzed,
		errored,
		skipped,
		id,
	)
	if err != nil {
		return fmt.Errorf("complete run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete run rows affected: %w", err)
	}
	if affected == 0 {
		return archive.ErrNotFound
	}
	return nil
}

// GetRun fetches a run record by ID.
func (s *Store) GetRun(ctx context.Context, id string) (archive.Run, error) {
	if err := ctx.Err(); err != nil {
		return archive.Run{}, err
	}
	if s == nil || s.sqlDB == nil {
		return archive.Run{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return archive.Run{}, fmt.Errorf("run id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, input_path, mode, started_at, finished_at, analyzed, errored, skipped
FROM runs
WHERE id = ?
`, id)

	var run archive.Run
	var startedAt, finishedAt int64
	if err := row.Scan(
		&run.ID,
		&run.InputPath,
		&run.Mode,
		&startedAt,
		&finishedAt,
		&run.Analyzed,
		&run.Errored,
		&run.Skipped,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return archive.Run{}, archive.ErrNotFound
		}
		return archive.Run{}, fmt.Errorf("get run: %w", err)
	}
	run.StartedAt = fromMillis(startedAt)
	if finishedAt != 0 {
		run.FinishedAt = fromMillis(finishedAt)
	}
	return run, nil
}

// SaveBoard upserts a board record keyed by ref.
func (s *Store) SaveBoard(ctx context.Context, board archive.Board) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(board.Ref) == "" {
		return fmt.Errorf("board ref is required")
	}
	if board.AnalyzedAt.IsZero() {
		board.AnalyzedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO boards (
	ref, board_num, deal, contract, declarer, cardplay,
	player_north, player_east, player_south, player_west,
	analysis, run_id, analyzed_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(ref) DO UPDATE SET
	board_num = excluded.board_num,
	deal = excluded.deal,
	contract = excluded.contract,
	declarer = excluded.declarer,
	cardplay = excluded.cardplay,
	player_north = excluded.player_north,
	player_east = excluded.player_east,
	player_south = excluded.player_south,
	player_west = excluded.player_west,
	analysis = excluded.analysis,
	run_id = excluded.run_id,
	analyzed_at = excluded.analyzed_at
`,
		board.Ref,
		board.BoardNum,
		board.Deal,
		board.Contract,
		board.Declarer,
		board.Cardplay,
		board.PlayerNorth,
		board.PlayerEast,
		board.PlayerSouth,
		board.PlayerWest,
		board.Analysis,
		board.RunID,
		toMillis(board.AnalyzedAt),
	)
	if err != nil {
		return fmt.Errorf("save board: %w", err)
	}
	return nil
}

// GetBoard fetches a board record by ref.
func (s *Store) GetBoard(ctx context.Context, ref string) (archive.Board, error) {
	if err := ctx.Err(); err != nil {
		return archive.Board{}, err
	}
	if s == nil || s.sqlDB == nil {
		return archive.Board{}, fmt.Errorf("storage is not configured")
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return archive.Board{}, fmt.Errorf("board ref is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT ref, board_num, deal, contract, declarer, cardplay,
	player_north, player_east, player_south, player_west,
	analysis, run_id, analyzed_at
FROM boards
WHERE ref = ?
`, ref)

	board, err := scanBoard(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return archive.Board{}, archive.ErrNotFound
		}
		return archive.Board{}, fmt.Errorf("get board: %w", err)
	}
	return board, nil
}

// ListBoards returns a page of boards ordered by ref.
func (s *Store) ListBoards(ctx context.Context, pageSize int, pageToken string) (archive.BoardPage, error) {
	if err := ctx.Err(); err != nil {
		return archive.BoardPage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return archive.BoardPage{}, fmt.Errorf("storage is not configured")
	}
	if pageSize <= 0 {
		return archive.BoardPage{}, fmt.Errorf("page size must be greater than zero")
	}

	limit := pageSize + 1
	var (
		rows *sql.Rows
		err  error
	)
	if strings.TrimSpace(pageToken) == "" {
		rows, err = s.sqlDB.QueryContext(ctx, `
SELECT ref, board_num, deal, contract, declarer, cardplay,
	player_north, player_east, player_south, player_west,
	analysis, run_id, analyzed_at
FROM boards
ORDER BY ref
LIMIT ?
`, limit)
	} else {
		rows, err = s.sqlDB.QueryContext(ctx, `
SELECT ref, board_num, deal, contract, declarer, cardplay,
	player_north, player_east, player_south, player_west,
	analysis, run_id, analyzed_at
FROM boards
WHERE ref > ?
ORDER BY ref
LIMIT ?
`, strings.TrimSpace(pageToken), limit)
	}
	if err != nil {
		return archive.BoardPage{}, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	page := archive.BoardPage{Boards: make([]archive.Board, 0, pageSize)}
	for rows.Next() {
		board, err := scanBoard(rows.Scan)
		if err != nil {
			return archive.BoardPage{}, fmt.Errorf("scan board row: %w", err)
		}
		page.Boards = append(page.Boards, board)
	}
	if err := rows.Err(); err != nil {
		return archive.BoardPage{}, fmt.Errorf("iterate board rows: %w", err)
	}

	if len(page.Boards) > pageSize {
		page.NextPageToken = page.Boards[pageSize-1].Ref
		page.Boards = page.Boards[:pageSize]
	}
	return page, nil
}

func scanBoard(scan func(dest ...any) error) (archive.Board, error) {
	var board archive.Board
	var analyzedAt int64
	err := scan(
		&board.Ref,
		&board.BoardNum,
		&board.Deal,
		&board.Contract,
		&board.Declarer,
		&board.Cardplay,
		&board.PlayerNorth,
		&board.PlayerEast,
		&board.PlayerSouth,
		&board.PlayerWest,
		&board.Analysis,
		&board.RunID,
		&analyzedAt,
	)
	if err != nil {
		return archive.Board{}, err
	}
	board.AnalyzedAt = fromMillis(analyzedAt)
	return board, nil
}

var _ archive.Store = (*Store)(nil)
