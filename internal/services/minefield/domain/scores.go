package domain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	apperrors "github.com/louisbranch/minefield/internal/platform/errors"
	"github.com/louisbranch/minefield/internal/services/minefield/filter"
	"github.com/louisbranch/minefield/internal/services/minefield/storage"
	"github.com/louisbranch/minefield/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultScorePageSize = 10
	maxScorePageSize     = 100
)

// ScoreEntry is one leaderboard row.
type ScoreEntry struct {
	ID         string `json:"id" jsonschema:"score identifier"`
	GameID     string `json:"game_id" jsonschema:"game that produced the score"`
	PlayerName string `json:"player_name" jsonschema:"player name"`
	Score      int    `json:"score" jsonschema:"whole seconds from first reveal to win; lower is better"`
	Rows       int    `json:"rows" jsonschema:"board rows"`
	Cols       int    `json:"cols" jsonschema:"board columns"`
	Mines      int    `json:"mines" jsonschema:"mine count"`
	RecordedAt string `json:"recorded_at" jsonschema:"RFC3339 timestamp when the score was recorded"`
}

// RecordScoreInput represents the MCP tool input for recording a score.
type RecordScoreInput struct {
	GameID     string `json:"game_id" jsonschema:"identifier of a won game"`
	PlayerName string `json:"player_name,omitempty" jsonschema:"name to record; defaults to the name given at creation"`
}

// ScoreResult represents the MCP tool output for a recorded score.
type ScoreResult struct {
	Score   ScoreEntry `json:"score" jsonschema:"recorded score"`
	Summary string     `json:"summary" jsonschema:"localized one-line summary"`
}

// ListScoresInput represents the MCP tool input for listing scores.
type ListScoresInput struct {
	PageSize  int    `json:"page_size,omitempty" jsonschema:"maximum scores to return (default 10, max 100)"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous page"`
	Filter    string `json:"filter,omitempty" jsonschema:"AIP-160 filter over player_name, score and recorded_at, e.g. score < 60"`
}

// ListScoresResult represents the MCP tool output for listing scores.
type ListScoresResult struct {
	Scores        []ScoreEntry `json:"scores" jsonschema:"scores, fastest first"`
	NextPageToken string       `json:"next_page_token,omitempty" jsonschema:"token for the next page, empty on the last page"`
	Summary       string       `json:"summary" jsonschema:"localized one-line summary"`
}

// ClearScoresInput represents the MCP tool input for clearing scores.
type ClearScoresInput struct{}

// ClearScoresResult represents the MCP tool output for clearing scores.
type ClearScoresResult struct {
	Removed int    `json:"removed" jsonschema:"number of scores deleted"`
	Summary string `json:"summary" jsonschema:"localized one-line summary"`
}

// RecordScoreTool defines the MCP tool schema for recording a score.
func RecordScoreTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "minefield_record_score",
		Description: "Stores the time of a won game on the leaderboard. Each game records at most one score.",
	}
}

// ListScoresTool defines the MCP tool schema for listing scores.
func ListScoresTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "minefield_list_scores",
		Description: "Lists leaderboard scores from fastest to slowest, optionally filtered.",
	}
}

// ClearScoresTool defines the MCP tool schema for clearing scores.
func ClearScoresTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "minefield_clear_scores",
		Description: "Deletes every leaderboard score.",
	}
}

// RecordScoreHandler records the score of a won game.
func RecordScoreHandler(deps Deps) mcp.ToolHandlerFor[RecordScoreInput, ScoreResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RecordScoreInput) (result *mcp.CallToolResult, out ScoreResult, err error) {
		ctx, span := startSpan(ctx, "minefield_record_score", attribute.String("minefield.game_id", input.GameID))
		defer func() { endSpan(span, err) }()
		p := deps.printer()

		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, ScoreResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		game, err := deps.game(input.GameID)
		if err != nil {
			return nil, ScoreResult{}, toolError(p, err)
		}
		entry, err := recordScore(ctx, deps, game, input.PlayerName)
		if err != nil {
			return nil, ScoreResult{}, toolError(p, err)
		}

		out = ScoreResult{
			Score:   entry,
			Summary: p.Sprintf("score.recorded", entry.Score, entry.PlayerName),
		}
		NotifyResourceUpdates(ctx, deps.Notify, ScoresURI, GameURI(game.ID()))
		return CallToolResult(invocationID, out.Summary), out, nil
	}
}

// ListScoresHandler lists leaderboard scores.
func ListScoresHandler(deps Deps) mcp.ToolHandlerFor[ListScoresInput, ListScoresResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListScoresInput) (result *mcp.CallToolResult, out ListScoresResult, err error) {
		ctx, span := startSpan(ctx, "minefield_list_scores", attribute.String("minefield.filter", input.Filter))
		defer func() { endSpan(span, err) }()
		p := deps.printer()

		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, ListScoresResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		page, err := listScores(ctx, deps, input)
		if err != nil {
			return nil, ListScoresResult{}, toolError(p, err)
		}

		out = ListScoresResult{
			Scores:        make([]ScoreEntry, 0, len(page.Scores)),
			NextPageToken: page.NextPageToken,
		}
		for _, score := range page.Scores {
			out.Scores = append(out.Scores, scoreEntry(score))
		}
		out.Summary = p.Sprintf("scores.listed", len(out.Scores))
		return CallToolResult(invocationID, out.Summary), out, nil
	}
}

// ClearScoresHandler deletes every score.
func ClearScoresHandler(deps Deps) mcp.ToolHandlerFor[ClearScoresInput, ClearScoresResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ClearScoresInput) (result *mcp.CallToolResult, out ClearScoresResult, err error) {
		ctx, span := startSpan(ctx, "minefield_clear_scores")
		defer func() { endSpan(span, err) }()
		p := deps.printer()

		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, ClearScoresResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		if deps.Scores == nil {
			return nil, ClearScoresResult{}, fmt.Errorf("score store is not configured")
		}
		removed, err := deps.Scores.ClearScores(ctx)
		if err != nil {
			return nil, ClearScoresResult{}, toolError(p, err)
		}
		log.Printf("scores cleared: removed=%d", removed)

		out = ClearScoresResult{Removed: removed, Summary: p.Sprintf("scores.cleared", removed)}
		NotifyResourceUpdates(ctx, deps.Notify, ScoresURI)
		return CallToolResult(invocationID, out.Summary), out, nil
	}
}

func recordScore(ctx context.Context, deps Deps, game *session.Game, player string) (ScoreEntry, error) {
	if deps.Scores == nil {
		return ScoreEntry{}, fmt.Errorf("score store is not configured")
	}
	record, err := game.ClaimScore(player)
	if err != nil {
		return ScoreEntry{}, err
	}
	scoreID, err := deps.newScoreID()
	if err != nil {
		game.ReleaseScore()
		return ScoreEntry{}, fmt.Errorf("generate score id: %w", err)
	}
	score := storage.Score{
		ID:         scoreID,
		GameID:     record.GameID,
		PlayerName: record.PlayerName,
		Seconds:    record.Seconds,
		Rows:       record.Rows,
		Cols:       record.Cols,
		Mines:      record.Mines,
		RecordedAt: record.RecordedAt,
	}
	if err := deps.Scores.AppendScore(ctx, score); err != nil {
		if !errors.Is(err, storage.ErrAlreadyExists) {
			game.ReleaseScore()
		}
		return ScoreEntry{}, fmt.Errorf("append score: %w", err)
	}
	log.Printf("score recorded: game=%s player=%q seconds=%d", score.GameID, score.PlayerName, score.Seconds)
	return scoreEntry(score), nil
}

func listScores(ctx context.Context, deps Deps, input ListScoresInput) (storage.ScorePage, error) {
	if deps.Scores == nil {
		return storage.ScorePage{}, fmt.Errorf("score store is not configured")
	}
	cond, err := filter.ParseScoreFilter(input.Filter)
	if err != nil {
		return storage.ScorePage{}, &apperrors.Error{
			Code:     apperrors.CodeInvalidFilter,
			Message:  err.Error(),
			Metadata: map[string]string{"filter": strings.TrimSpace(input.Filter)},
			Cause:    err,
		}
	}
	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = defaultScorePageSize
	}
	if pageSize > maxScorePageSize {
		pageSize = maxScorePageSize
	}
	return deps.Scores.ListScores(ctx, storage.ListOptions{
		PageSize:  pageSize,
		PageToken: input.PageToken,
		Filter:    cond,
	})
}

func scoreEntry(score storage.Score) ScoreEntry {
	return ScoreEntry{
		ID:         score.ID,
		GameID:     score.GameID,
		PlayerName: score.PlayerName,
		Score:      score.Seconds,
		Rows:       score.Rows,
		Cols:       score.Cols,
		Mines:      score.Mines,
		RecordedAt: score.RecordedAt.UTC().Format(time.RFC3339),
	}
}
