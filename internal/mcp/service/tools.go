package service

import (
	"github.com/fifthchair/tricklens/internal/archive"
	"github.com/fifthchair/tricklens/internal/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerAnalysisTools registers the self-contained solving, analysis,
// and scoring tools.
func registerAnalysisTools(mcpServer *mcp.Server) {
	mcp.AddTool(mcpServer, domain.SolveDealTool(), domain.SolveDealHandler())
	mcp.AddTool(mcpServer, domain.AnalyzePlayTool(), domain.AnalyzePlayHandler())
	mcp.AddTool(mcpServer, domain.ScoreContractTool(), domain.ScoreContractHandler())
}

// registerArchiveTools registers the tools and resources backed by the
// board archive. They register even without a store so clients see the
// full surface; each answers with a configuration error until a
// database path is set.
func registerArchiveTools(mcpServer *mcp.Server, store archive.Store) {
	mcp.AddTool(mcpServer, domain.BoardLookupTool(), domain.BoardLookupHandler(store))
	mcpServer.AddResource(domain.BoardListResource(), domain.BoardListResourceHandler(store))
}
