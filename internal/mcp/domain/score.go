package domain

import (
	"context"
	"fmt"

	"github.com/fifthchair/tricklens/internal/bridge"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ScoreContractInput is the MCP tool input for scoring a contract.
type ScoreContractInput struct {
	Contract   string `json:"contract" jsonschema:"contract such as 4S, 3NT, or 6HXX"`
	Vulnerable bool   `json:"vulnerable,omitempty" jsonschema:"whether the declaring side is vulnerable"`
	Tricks     int    `json:"tricks" jsonschema:"total tricks taken by the declaring side, 0 through 13"`
}

// ScoreContractResult is the MCP tool output for scoring a contract.
type ScoreContractResult struct {
	Contract string `json:"contract" jsonschema:"normalized contract"`
	Needed   int    `json:"needed" jsonschema:"tricks needed to make the contract"`
	Relative int    `json:"relative" jsonschema:"overtricks when positive, undertricks when negative"`
	Made     bool   `json:"made" jsonschema:"whether the contract made"`
	Score    int    `json:"score" jsonschema:"duplicate score from the declaring side's view, negative when down"`
}

// ScoreContractTool defines the MCP tool schema for scoring a contract.
func ScoreContractTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "score_contract",
		Description: "Scores a contract under duplicate rules given the tricks taken and the declaring side's vulnerability.",
	}
}

// ScoreContractHandler executes a duplicate scoring request.
func ScoreContractHandler() mcp.ToolHandlerFor[ScoreContractInput, ScoreContractResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ScoreContractInput) (*mcp.CallToolResult, ScoreContractResult, error) {
		contract, err := bridge.ParseContract(input.Contract)
		if err != nil {
			return nil, ScoreContractResult{}, fmt.Errorf("parse contract: %w", err)
		}
		if input.Tricks < 0 || input.Tricks > 13 {
			return nil, ScoreContractResult{}, fmt.Errorf("tricks must be between 0 and 13, got %d", input.Tricks)
		}

		needed := contract.Level + 6
		relative := input.Tricks - needed
		result := ScoreContractResult{
			Contract: fmt.Sprintf("%d%s%s", contract.Level, contract.Strain, contract.Doubling),
			Needed:   needed,
			Relative: relative,
			Made:     relative >= 0,
			Score:    contract.Score(relative, input.Vulnerable),
		}
		return nil, result, nil
	}
}
