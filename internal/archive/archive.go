// Package archive defines the persistent record of analyzer runs and
// analyzed boards. Storage backends live in subpackages.
package archive

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// Run records one analyzer invocation over one input file.
type Run struct {
	ID         string
	InputPath  string
	Mode       string
	StartedAt  time.Time
	FinishedAt time.Time
	Analyzed   int64
	Errored    int64
	Skipped    int64
}

// Board is one analyzed board, keyed by the source file's reference.
// Analysis holds the cost stream, or an "ERROR: …" message when the
// board could not be analyzed.
type Board struct {
	Ref         string
	BoardNum    string
	Deal        string // PBN, North first
	Contract    string
	Declarer    string
	Cardplay    string
	PlayerNorth string
	PlayerEast  string
	PlayerSouth string
	PlayerWest  string
	Analysis    string
	RunID       string
	AnalyzedAt  time.Time
}

// BoardPage is a paged set of boards.
type BoardPage struct {
	Boards        []Board
	NextPageToken string
}

// Store persists runs and boards. Saving a board with an existing ref
// replaces the earlier record.
type Store interface {
	SaveRun(ctx context.Context, run Run) error
	CompleteRun(ctx context.Context, id string, analyzed, errored, skipped int64) error
	SaveBoard(ctx context.Context, board Board) error
	GetBoard(ctx context.Context, ref string) (Board, error)
	ListBoards(ctx context.Context, pageSize int, pageToken string) (BoardPage, error)
	Close() error
}
