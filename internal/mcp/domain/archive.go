package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fifthchair/tricklens/internal/archive"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// archiveTimeout bounds each board archive call.
const archiveTimeout = 5 * time.Second

// boardListURI is the canonical URI of the archived board listing.
const boardListURI = "tricklens://boards"

// BoardLookupInput is the MCP tool input for fetching an archived board.
type BoardLookupInput struct {
	Ref string `json:"ref" jsonschema:"board reference from the analyzed file"`
}

// BoardLookupResult is the MCP tool output for fetching an archived board.
type BoardLookupResult struct {
	Ref         string `json:"ref" jsonschema:"board reference"`
	BoardNum    string `json:"board_num,omitempty" jsonschema:"board number within the session"`
	Deal        string `json:"deal" jsonschema:"deal in PBN, North first"`
	Contract    string `json:"contract" jsonschema:"contract as recorded"`
	Declarer    string `json:"declarer" jsonschema:"declaring seat"`
	Cardplay    string `json:"cardplay" jsonschema:"recorded tricks"`
	PlayerNorth string `json:"player_north" jsonschema:"player sitting North"`
	PlayerEast  string `json:"player_east" jsonschema:"player sitting East"`
	PlayerSouth string `json:"player_south" jsonschema:"player sitting South"`
	PlayerWest  string `json:"player_west" jsonschema:"player sitting West"`
	Analysis    string `json:"analysis" jsonschema:"stored cost stream, or an ERROR message when analysis failed"`
	RunID       string `json:"run_id,omitempty" jsonschema:"analyzer run that produced the record"`
	AnalyzedAt  string `json:"analyzed_at,omitempty" jsonschema:"RFC3339 timestamp of the analysis"`
}

// BoardLookupTool defines the MCP tool schema for fetching an archived board.
func BoardLookupTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "board_lookup",
		Description: "Fetches an analyzed board from the archive by its source-file reference.",
	}
}

// BoardLookupHandler executes an archived board lookup. A nil store
// answers every call with a configuration error.
func BoardLookupHandler(store archive.Store) mcp.ToolHandlerFor[BoardLookupInput, BoardLookupResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BoardLookupInput) (*mcp.CallToolResult, BoardLookupResult, error) {
		if store == nil {
			return nil, BoardLookupResult{}, fmt.Errorf("board archive is not configured; start the server with a database path")
		}
		if input.Ref == "" {
			return nil, BoardLookupResult{}, fmt.Errorf("ref is required")
		}

		callCtx, cancel := context.WithTimeout(ctx, archiveTimeout)
		defer cancel()

		board, err := store.GetBoard(callCtx, input.Ref)
		if err != nil {
			return nil, BoardLookupResult{}, fmt.Errorf("board %q: %w", input.Ref, err)
		}

		result := BoardLookupResult{
			Ref:         board.Ref,
			BoardNum:    board.BoardNum,
			Deal:        board.Deal,
			Contract:    board.Contract,
			Declarer:    board.Declarer,
			Cardplay:    board.Cardplay,
			PlayerNorth: board.PlayerNorth,
			PlayerEast:  board.PlayerEast,
			PlayerSouth: board.PlayerSouth,
			PlayerWest:  board.PlayerWest,
			Analysis:    board.Analysis,
			RunID:       board.RunID,
		}
		if !board.AnalyzedAt.IsZero() {
			result.AnalyzedAt = board.AnalyzedAt.UTC().Format(time.RFC3339)
		}
		return nil, result, nil
	}
}

// BoardListEntry is one row of the board listing resource.
type BoardListEntry struct {
	Ref        string `json:"ref"`
	BoardNum   string `json:"board_num,omitempty"`
	Contract   string `json:"contract"`
	Declarer   string `json:"declarer"`
	Analysis   string `json:"analysis"`
	AnalyzedAt string `json:"analyzed_at,omitempty"`
}

// BoardListPayload is the JSON payload of the board listing resource.
type BoardListPayload struct {
	Boards        []BoardListEntry `json:"boards"`
	NextPageToken string           `json:"next_page_token,omitempty"`
}

// BoardListResource defines the MCP resource for listing archived boards.
func BoardListResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "board_list",
		Description: "Archived boards ordered by reference, one page per read.",
		MIMEType:    "application/json",
		URI:         boardListURI,
	}
}

// BoardListResourceHandler returns a readable listing of archived boards.
func BoardListResourceHandler(store archive.Store) mcp.ResourceHandler {
	return func(ctx context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if store == nil {
			return nil, fmt.Errorf("board archive is not configured")
		}

		callCtx, cancel := context.WithTimeout(ctx, archiveTimeout)
		defer cancel()

		page, err := store.ListBoards(callCtx, 50, "")
		if err != nil {
			return nil, fmt.Errorf("list boards: %w", err)
		}

		payload := BoardListPayload{
			Boards:        make([]BoardListEntry, 0, len(page.Boards)),
			NextPageToken: page.NextPageToken,
		}
		for _, board := range page.Boards {
			entry := BoardListEntry{
				Ref:      board.Ref,
				BoardNum: board.BoardNum,
				Contract: board.Contract,
				Declarer: board.Declarer,
				Analysis: board.Analysis,
			}
			if !board.AnalyzedAt.IsZero() {
				entry.AnalyzedAt = board.AnalyzedAt.UTC().Format(time.RFC3339)
			}
			payload.Boards = append(payload.Boards, entry)
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal board list: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      boardListURI,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
