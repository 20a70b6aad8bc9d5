package domain

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/louisbranch/minefield/internal/minesweeper"
	apperrors "github.com/louisbranch/minefield/internal/platform/errors"
	"github.com/louisbranch/minefield/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/message"
)

// NewGameInput represents the MCP tool input for starting a game.
type NewGameInput struct {
	Preset     string `json:"preset,omitempty" jsonschema:"board preset (beginner, classic, intermediate, expert); defaults to classic"`
	Rows       *int   `json:"rows,omitempty" jsonschema:"board rows; overrides the preset"`
	Cols       *int   `json:"cols,omitempty" jsonschema:"board columns; overrides the preset"`
	Mines      *int   `json:"mines,omitempty" jsonschema:"mine count; overrides the preset"`
	Seed       *int64 `json:"seed,omitempty" jsonschema:"seed for a reproducible mine layout"`
	PlayerName string `json:"player_name,omitempty" jsonschema:"name stored with the score when the game is won"`
}

// GameIDInput identifies a game.
type GameIDInput struct {
	GameID string `json:"game_id" jsonschema:"game identifier"`
}

// BoardInput represents the MCP tool input for reading a board.
type BoardInput struct {
	GameID      string `json:"game_id" jsonschema:"game identifier"`
	RevealMines *bool  `json:"reveal_mines,omitempty" jsonschema:"set false to hide mines when the server runs with debug mine display"`
}

// MoveInput represents the MCP tool input for a move on one cell.
type MoveInput struct {
	GameID string `json:"game_id" jsonschema:"game identifier"`
	Row    int    `json:"row" jsonschema:"zero-based row"`
	Col    int    `json:"col" jsonschema:"zero-based column"`
}

// GameResult represents the MCP tool output carrying a board.
type GameResult struct {
	Game    BoardView `json:"game" jsonschema:"board view"`
	Summary string    `json:"summary" jsonschema:"localized one-line summary"`
}

// MoveResult represents the MCP tool output of a move.
type MoveResult struct {
	Game    BoardView   `json:"game" jsonschema:"board view after the move"`
	Outcome string      `json:"outcome,omitempty" jsonschema:"WON or LOST when this move decided the game"`
	Score   *ScoreEntry `json:"score,omitempty" jsonschema:"score stored automatically for a named player on a win"`
	Summary string      `json:"summary" jsonschema:"localized one-line summary"`
}

// EndGameResult represents the MCP tool output for discarding a game.
type EndGameResult struct {
	GameID  string `json:"game_id" jsonschema:"game identifier"`
	Summary string `json:"summary" jsonschema:"localized one-line summary"`
}

// NewGameTool defines the MCP tool schema for starting a game.
func NewGameTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "minefield_new_game",
		Description: "Starts a minesweeper game. Mines are placed on the first reveal, never under the revealed cell.",
	}
}

// RevealTool defines the MCP tool schema for revealing a cell.
func RevealTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "minefield_reveal",
		Description: "Reveals a hidden cell. Empty cells open their whole region; revealing a mine loses the game.",
	}
}

// FlagTool defines the MCP tool schema for toggling a flag.
func FlagTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "minefield_flag",
		Description: "Toggles a flag on a hidden cell. Flagged cells cannot be revealed.",
	}
}

// ChordTool defines the MCP tool schema for chording a numbered cell.
func ChordTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "minefield_chord",
		Description: "Reveals every unflagged neighbour of a revealed number whose flags match its count.",
	}
}

// ResetTool defines the MCP tool schema for resetting a game.
func ResetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "minefield_reset",
		Description: "Restarts a game with the same size. Mines are placed again on the next reveal.",
	}
}

// BoardTool defines the MCP tool schema for reading a board.
func BoardTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "minefield_board",
		Description: "Returns the current board, status, elapsed time and mines remaining.",
	}
}

// EndGameTool defines the MCP tool schema for discarding a game.
func EndGameTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "minefield_end_game",
		Description: "Discards a game. Its score, if recorded, stays on the leaderboard.",
	}
}

// NewGameHandler executes a new game request.
func NewGameHandler(deps Deps) mcp.ToolHandlerFor[NewGameInput, GameResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input NewGameInput) (result *mcp.CallToolResult, out GameResult, err error) {
		ctx, span := startSpan(ctx, "minefield_new_game", attribute.String("minefield.preset", input.Preset))
		defer func() { endSpan(span, err) }()
		p := deps.printer()

		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, GameResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		req, err := createRequest(input)
		if err != nil {
			return nil, GameResult{}, toolError(p, err)
		}
		if deps.Games == nil {
			return nil, GameResult{}, fmt.Errorf("game manager is not configured")
		}
		game, err := deps.Games.Create(req)
		if err != nil {
			return nil, GameResult{}, toolError(p, err)
		}
		span.SetAttributes(attribute.String("minefield.game_id", game.ID()))

		view := ProjectBoard(game.State(), deps.RevealMines)
		out = GameResult{
			Game:    view,
			Summary: p.Sprintf("game.created", view.Rows, view.Cols, view.Mines, view.GameID),
		}
		NotifyResourceUpdates(ctx, deps.Notify, GameURI(view.GameID))
		return CallToolResult(invocationID, out.Summary), out, nil
	}
}

// RevealHandler executes a reveal. A win by a named player stores the score.
func RevealHandler(deps Deps) mcp.ToolHandlerFor[MoveInput, MoveResult] {
	return moveHandler(deps, "minefield_reveal", (*session.Game).Reveal)
}

// FlagHandler executes a flag toggle.
func FlagHandler(deps Deps) mcp.ToolHandlerFor[MoveInput, MoveResult] {
	return moveHandler(deps, "minefield_flag", (*session.Game).Flag)
}

// ChordHandler executes a chord.
func ChordHandler(deps Deps) mcp.ToolHandlerFor[MoveInput, MoveResult] {
	return moveHandler(deps, "minefield_chord", (*session.Game).Chord)
}

func moveHandler(deps Deps, name string, apply func(*session.Game, int, int) session.MoveResult) mcp.ToolHandlerFor[MoveInput, MoveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MoveInput) (result *mcp.CallToolResult, out MoveResult, err error) {
		ctx, span := startSpan(ctx, name,
			attribute.String("minefield.game_id", input.GameID),
			attribute.Int("minefield.row", input.Row),
			attribute.Int("minefield.col", input.Col),
		)
		defer func() { endSpan(span, err) }()
		p := deps.printer()

		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, MoveResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		game, err := deps.game(input.GameID)
		if err != nil {
			return nil, MoveResult{}, toolError(p, err)
		}
		if !game.InBounds(input.Row, input.Col) {
			return nil, MoveResult{}, toolError(p, outOfBounds(input.Row, input.Col))
		}

		move := apply(game, input.Row, input.Col)
		uris := []string{GameURI(game.ID())}
		if move.Decided() {
			out.Outcome = move.Status.String()
			span.SetAttributes(attribute.String("minefield.outcome", out.Outcome))
		}
		if move.Won() && game.State().PlayerName != "" {
			entry, err := recordScore(ctx, deps, game, "")
			if err != nil {
				log.Printf("auto record score: game=%s err=%v", game.ID(), err)
			} else {
				out.Score = &entry
				uris = append(uris, ScoresURI)
			}
		}

		out.Game = ProjectBoard(game.State(), deps.RevealMines)
		out.Summary = moveSummary(p, move, out.Game)
		NotifyResourceUpdates(ctx, deps.Notify, uris...)
		return CallToolResult(invocationID, out.Summary), out, nil
	}
}

// ResetHandler executes a reset.
func ResetHandler(deps Deps) mcp.ToolHandlerFor[GameIDInput, GameResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GameIDInput) (result *mcp.CallToolResult, out GameResult, err error) {
		ctx, span := startSpan(ctx, "minefield_reset", attribute.String("minefield.game_id", input.GameID))
		defer func() { endSpan(span, err) }()
		p := deps.printer()

		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, GameResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		game, err := deps.game(input.GameID)
		if err != nil {
			return nil, GameResult{}, toolError(p, err)
		}
		game.Reset()

		out = GameResult{
			Game:    ProjectBoard(game.State(), deps.RevealMines),
			Summary: p.Sprintf("game.reset", game.ID()),
		}
		NotifyResourceUpdates(ctx, deps.Notify, GameURI(game.ID()))
		return CallToolResult(invocationID, out.Summary), out, nil
	}
}

// BoardHandler returns the current board.
func BoardHandler(deps Deps) mcp.ToolHandlerFor[BoardInput, GameResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BoardInput) (result *mcp.CallToolResult, out GameResult, err error) {
		_, span := startSpan(ctx, "minefield_board", attribute.String("minefield.game_id", input.GameID))
		defer func() { endSpan(span, err) }()
		p := deps.printer()

		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, GameResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		game, err := deps.game(input.GameID)
		if err != nil {
			return nil, GameResult{}, toolError(p, err)
		}

		reveal := deps.RevealMines && (input.RevealMines == nil || *input.RevealMines)
		view := ProjectBoard(game.State(), reveal)
		out = GameResult{Game: view, Summary: gameSummary(p, view)}
		return CallToolResult(invocationID, out.Summary), out, nil
	}
}

// EndGameHandler discards a game.
func EndGameHandler(deps Deps) mcp.ToolHandlerFor[GameIDInput, EndGameResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GameIDInput) (result *mcp.CallToolResult, out EndGameResult, err error) {
		ctx, span := startSpan(ctx, "minefield_end_game", attribute.String("minefield.game_id", input.GameID))
		defer func() { endSpan(span, err) }()
		p := deps.printer()

		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, EndGameResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		gameID := strings.TrimSpace(input.GameID)
		if deps.Games == nil || !deps.Games.Remove(gameID) {
			return nil, EndGameResult{}, toolError(p, session.ErrGameNotFound)
		}

		out = EndGameResult{GameID: gameID, Summary: p.Sprintf("game.ended", gameID)}
		NotifyResourceUpdates(ctx, deps.Notify, GameURI(gameID))
		return CallToolResult(invocationID, out.Summary), out, nil
	}
}

func createRequest(input NewGameInput) (session.CreateRequest, error) {
	size := minesweeper.Preset{Rows: minesweeper.DefaultRows, Cols: minesweeper.DefaultCols, Mines: minesweeper.DefaultMines}
	if name := strings.TrimSpace(input.Preset); name != "" {
		preset, ok := minesweeper.LookupPreset(name)
		if !ok {
			return session.CreateRequest{}, apperrors.WithMetadata(
				apperrors.CodeUnknownPreset,
				fmt.Sprintf("unknown preset %q", name),
				map[string]string{"preset": name, "known": strings.Join(minesweeper.PresetNames(), "|")},
			)
		}
		size = preset
	}
	if input.Rows != nil {
		size.Rows = *input.Rows
	}
	if input.Cols != nil {
		size.Cols = *input.Cols
	}
	if input.Mines != nil {
		size.Mines = *input.Mines
	}
	return session.CreateRequest{
		Rows:       size.Rows,
		Cols:       size.Cols,
		Mines:      size.Mines,
		Seed:       input.Seed,
		PlayerName: input.PlayerName,
	}, nil
}

func outOfBounds(row, col int) *apperrors.Error {
	return &apperrors.Error{
		Code:     apperrors.CodeOutOfBounds,
		Message:  fmt.Sprintf("cell (%d, %d) is outside the board", row, col),
		Metadata: map[string]string{"row": strconv.Itoa(row), "col": strconv.Itoa(col)},
		Cause:    minesweeper.ErrOutOfBounds,
	}
}

func gameSummary(p *message.Printer, view BoardView) string {
	return p.Sprintf("game.summary", view.GameID, p.Sprintf("status."+view.Status), view.MinesRemaining, view.ElapsedSeconds)
}

func moveSummary(p *message.Printer, move session.MoveResult, view BoardView) string {
	if move.Decided() {
		switch move.Status {
		case minesweeper.StatusWon:
			return p.Sprintf("game.won", view.ElapsedSeconds)
		case minesweeper.StatusLost:
			return p.Sprintf("game.lost")
		}
	}
	return gameSummary(p, view)
}
