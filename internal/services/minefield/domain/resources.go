package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ScoresPayload is the leaderboard resource body.
type ScoresPayload struct {
	Scores []ScoreEntry `json:"scores"`
}

// GameResourceTemplate defines the MCP resource template for one game.
func GameResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "game",
		Title:       "Game",
		Description: "Readable board of a live game. URI format: minefield://games/{game_id}",
		MIMEType:    "application/json",
		URITemplate: "minefield://games/{game_id}",
	}
}

// ScoresResource defines the MCP resource for the leaderboard.
func ScoresResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "scores",
		Title:       "Leaderboard",
		Description: "Fastest recorded scores.",
		MIMEType:    "application/json",
		URI:         ScoresURI,
	}
}

// GameResourceHandler returns a readable game resource.
func GameResourceHandler(deps Deps) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("game ID is required; use URI format minefield://games/{game_id}")
		}
		uri := req.Params.URI

		gameID, err := parseGameIDFromURI(uri)
		if err != nil {
			return nil, fmt.Errorf("parse game ID from URI: %w", err)
		}
		game, err := deps.game(gameID)
		if err != nil {
			return nil, toolError(deps.printer(), err)
		}
		return jsonResource(uri, ProjectBoard(game.State(), deps.RevealMines))
	}
}

// ScoresResourceHandler returns the leaderboard resource.
func ScoresResourceHandler(deps Deps) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := ScoresURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		page, err := listScores(ctx, deps, ListScoresInput{})
		if err != nil {
			return nil, toolError(deps.printer(), err)
		}
		payload := ScoresPayload{Scores: make([]ScoreEntry, 0, len(page.Scores))}
		for _, score := range page.Scores {
			payload.Scores = append(payload.Scores, scoreEntry(score))
		}
		return jsonResource(uri, payload)
	}
}

func parseGameIDFromURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, gameURIPrefix) {
		return "", fmt.Errorf("URI must start with %q", gameURIPrefix)
	}
	gameID := strings.TrimPrefix(uri, gameURIPrefix)
	if gameID == "" {
		return "", fmt.Errorf("game ID is required in URI")
	}
	if strings.ContainsAny(gameID, "/?#") {
		return "", fmt.Errorf("URI must not contain path segments, query parameters, or fragments after game ID")
	}
	return gameID, nil
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
