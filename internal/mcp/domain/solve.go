// Package domain defines the MCP tool surface: typed inputs and outputs
// with Tool and Handler factories for deal solving, play analysis,
// contract scoring, and archived board lookup.
package domain

import (
	"context"
	"fmt"

	"github.com/fifthchair/tricklens/internal/analysis"
	"github.com/fifthchair/tricklens/internal/bridge"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SolveDealInput is the MCP tool input for solving a deal.
type SolveDealInput struct {
	Deal   string `json:"deal" jsonschema:"deal in PBN: first seat prefix then four dot-separated hands clockwise, e.g. N:AK2.T54.63.QJ82 ..."`
	Strain string `json:"strain" jsonschema:"strain to solve: C, D, H, S, or NT"`
	Leader string `json:"leader" jsonschema:"seat on lead: N, E, S, or W"`
}

// SolveDealResult is the MCP tool output for solving a deal.
type SolveDealResult struct {
	NSTricks    int `json:"ns_tricks" jsonschema:"tricks North-South take with best play on both sides"`
	EWTricks    int `json:"ew_tricks" jsonschema:"tricks East-West take with best play on both sides"`
	TotalTricks int `json:"total_tricks" jsonschema:"tricks at stake in the deal"`
}

// SolveDealTool defines the MCP tool schema for solving a deal.
func SolveDealTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "solve_deal",
		Description: "Solves a deal double-dummy: the exact tricks each side takes from the given lead with every hand visible and best play throughout.",
	}
}

// SolveDealHandler executes a double-dummy solve.
func SolveDealHandler() mcp.ToolHandlerFor[SolveDealInput, SolveDealResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SolveDealInput) (*mcp.CallToolResult, SolveDealResult, error) {
		deal, err := bridge.ParseDeal(input.Deal)
		if err != nil {
			return nil, SolveDealResult{}, fmt.Errorf("parse deal: %w", err)
		}
		strain, err := bridge.ParseStrain(input.Strain)
		if err != nil {
			return nil, SolveDealResult{}, fmt.Errorf("parse strain: %w", err)
		}
		leader, err := bridge.ParseSeat(input.Leader)
		if err != nil {
			return nil, SolveDealResult{}, fmt.Errorf("parse leader: %w", err)
		}

		ns, total := analysis.SolveDeal(deal, strain, leader)
		return nil, SolveDealResult{NSTricks: ns, EWTricks: total - ns, TotalTricks: total}, nil
	}
}
