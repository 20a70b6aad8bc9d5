package server

import (
	"github.com/louisbranch/minefield/internal/services/minefield/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *mcp.Server, deps domain.Deps) {
	mcp.AddTool(server, domain.NewGameTool(), domain.NewGameHandler(deps))
	mcp.AddTool(server, domain.RevealTool(), domain.RevealHandler(deps))
	mcp.AddTool(server, domain.FlagTool(), domain.FlagHandler(deps))
	mcp.AddTool(server, domain.ChordTool(), domain.ChordHandler(deps))
	mcp.AddTool(server, domain.ResetTool(), domain.ResetHandler(deps))
	mcp.AddTool(server, domain.BoardTool(), domain.BoardHandler(deps))
	mcp.AddTool(server, domain.EndGameTool(), domain.EndGameHandler(deps))
	mcp.AddTool(server, domain.RecordScoreTool(), domain.RecordScoreHandler(deps))
	mcp.AddTool(server, domain.ListScoresTool(), domain.ListScoresHandler(deps))
	mcp.AddTool(server, domain.ClearScoresTool(), domain.ClearScoresHandler(deps))
}

func registerResources(server *mcp.Server, deps domain.Deps) {
	server.AddResourceTemplate(domain.GameResourceTemplate(), domain.GameResourceHandler(deps))
	server.AddResource(domain.ScoresResource(), domain.ScoresResourceHandler(deps))
}
