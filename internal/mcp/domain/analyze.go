package domain

import (
	"context"
	"fmt"

	"github.com/fifthchair/tricklens/internal/analysis"
	"github.com/fifthchair/tricklens/internal/bridge"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AnalyzePlayInput is the MCP tool input for analyzing recorded cardplay.
type AnalyzePlayInput struct {
	Deal     string `json:"deal" jsonschema:"deal in PBN: first seat prefix then four dot-separated hands clockwise"`
	Contract string `json:"contract" jsonschema:"contract such as 4S, 3NT, or 6HX"`
	Declarer string `json:"declarer" jsonschema:"declaring seat: N, E, S, or W"`
	Cardplay string `json:"cardplay" jsonschema:"tricks separated by | with cards separated by spaces, e.g. D2 DA D6 D5|S3 S2 SQ SA"`
	Mode     string `json:"mode,omitempty" jsonschema:"attribution mode: mid-trick (default) or trick-boundary"`
}

// AnalyzePlayCard is one per-card cost record in the tool output.
type AnalyzePlayCard struct {
	Trick    int    `json:"trick" jsonschema:"1-based trick number"`
	Position int    `json:"position" jsonschema:"0-based position within the trick"`
	Seat     string `json:"seat" jsonschema:"seat that played the card"`
	Card     string `json:"card" jsonschema:"card played"`
	Cost     int    `json:"cost" jsonschema:"double-dummy tricks the play surrendered"`
}

// AnalyzePlayResult is the MCP tool output for analyzing recorded
// cardplay. On a fully played board initial_dd - declaring_cost +
// defending_cost equals declarer_tricks; reconciles reports whether
// that identity held.
type AnalyzePlayResult struct {
	InitialDD      int               `json:"initial_dd" jsonschema:"declaring side's double-dummy tricks before the opening lead"`
	DeclarerTricks int               `json:"declarer_tricks" jsonschema:"tricks the declaring side actually banked"`
	DeclaringCost  int               `json:"declaring_cost" jsonschema:"total tricks surrendered by declarer and dummy"`
	DefendingCost  int               `json:"defending_cost" jsonschema:"total tricks surrendered by the defense"`
	Reconciles     bool              `json:"reconciles" jsonschema:"whether the costs reconcile with the tricks actually taken"`
	Mode           string            `json:"mode" jsonschema:"attribution mode that produced the records"`
	CostStream     string            `json:"cost_stream" jsonschema:"per-card costs in the analyzed-file format"`
	Cards          []AnalyzePlayCard `json:"cards" jsonschema:"per-card cost records in play order"`
}

// AnalyzePlayTool defines the MCP tool schema for analyzing cardplay.
func AnalyzePlayTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "analyze_play",
		Description: "Replays recorded cardplay against the deal and charges every double-dummy trick lost to the card that lost it.",
	}
}

// AnalyzePlayHandler executes a cost attribution over recorded cardplay.
func AnalyzePlayHandler() mcp.ToolHandlerFor[AnalyzePlayInput, AnalyzePlayResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input AnalyzePlayInput) (*mcp.CallToolResult, AnalyzePlayResult, error) {
		deal, err := bridge.ParseDeal(input.Deal)
		if err != nil {
			return nil, AnalyzePlayResult{}, fmt.Errorf("parse deal: %w", err)
		}
		strain, err := bridge.TrumpFromContract(input.Contract)
		if err != nil {
			return nil, AnalyzePlayResult{}, fmt.Errorf("parse contract: %w", err)
		}
		declarer, err := bridge.ParseSeat(input.Declarer)
		if err != nil {
			return nil, AnalyzePlayResult{}, fmt.Errorf("parse declarer: %w", err)
		}
		tricks, err := analysis.ParseCardplay(input.Cardplay)
		if err != nil {
			return nil, AnalyzePlayResult{}, fmt.Errorf("parse cardplay: %w", err)
		}
		mode, err := analysis.ParseMode(input.Mode)
		if err != nil {
			return nil, AnalyzePlayResult{}, fmt.Errorf("parse mode: %w", err)
		}

		res, err := analysis.AnalyzeBoard(analysis.Board{
			Deal:     deal,
			Strain:   strain,
			Declarer: declarer,
			Tricks:   tricks,
		}, mode)
		if err != nil {
			return nil, AnalyzePlayResult{}, fmt.Errorf("analyze board: %w", err)
		}

		cards := make([]AnalyzePlayCard, 0, len(res.Records))
		for _, rec := range res.Records {
			cards = append(cards, AnalyzePlayCard{
				Trick:    rec.Trick,
				Position: rec.Position,
				Seat:     rec.Seat.String(),
				Card:     rec.Card.String(),
				Cost:     rec.Cost,
			})
		}

		result := AnalyzePlayResult{
			InitialDD:      res.InitialDD,
			DeclarerTricks: res.DeclarerTricks,
			DeclaringCost:  res.DeclaringCost,
			DefendingCost:  res.DefendingCost,
			Reconciles:     res.InitialDD-res.DeclaringCost+res.DefendingCost == res.DeclarerTricks,
			Mode:           mode.String(),
			CostStream:     res.Stream(),
			Cards:          cards,
		}
		return nil, result, nil
	}
}
