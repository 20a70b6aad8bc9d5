package domain

import (
	"strings"
	"time"

	"github.com/louisbranch/minefield/internal/minesweeper"
	"github.com/louisbranch/minefield/internal/session"
)

// CellView is one cell as a client may see it.
type CellView struct {
	State string `json:"state" jsonschema:"cell state (hidden, revealed, flagged)"`
	Count *int   `json:"count,omitempty" jsonschema:"neighbouring mines, present once the cell is known"`
	Mine  bool   `json:"mine,omitempty" jsonschema:"true when the cell is known to hold a mine"`
}

// BoardView is the client projection of a game.
type BoardView struct {
	GameID         string       `json:"game_id" jsonschema:"game identifier"`
	PlayerName     string       `json:"player_name,omitempty" jsonschema:"player name given at creation"`
	Rows           int          `json:"rows" jsonschema:"board rows"`
	Cols           int          `json:"cols" jsonschema:"board columns"`
	Mines          int          `json:"mines" jsonschema:"total mines"`
	Status         string       `json:"status" jsonschema:"game status (ONGOING, WON, LOST)"`
	ElapsedSeconds int          `json:"elapsed_seconds" jsonschema:"whole seconds since the first reveal"`
	MinesRemaining int          `json:"mines_remaining" jsonschema:"mines minus placed flags; may be negative"`
	Seed           *int64       `json:"seed,omitempty" jsonschema:"seed of the mine layout, present once the game is decided or mines are revealed"`
	ScoreRecorded  bool         `json:"score_recorded" jsonschema:"whether this game's score was stored"`
	CreatedAt      string       `json:"created_at" jsonschema:"RFC3339 timestamp when the game was created"`
	Grid           []string     `json:"grid" jsonschema:"one line per row: # hidden, F flagged, . empty, 1-8 counts, * mine"`
	Cells          [][]CellView `json:"cells" jsonschema:"cells in row-major order"`
}

// ProjectBoard builds the view of a game. Mines, counts of unrevealed cells
// and the layout seed stay hidden while the game is ongoing unless
// revealMines is set.
func ProjectBoard(state session.State, revealMines bool) BoardView {
	snap := state.Board
	disclose := revealMines || snap.Status.Terminal()
	view := BoardView{
		GameID:         state.ID,
		PlayerName:     state.PlayerName,
		Rows:           snap.Rows,
		Cols:           snap.Cols,
		Mines:          snap.Mines,
		Status:         snap.Status.String(),
		ElapsedSeconds: state.Elapsed,
		MinesRemaining: snap.Mines - snap.FlagsPlaced,
		ScoreRecorded:  state.ScoreRecorded,
		CreatedAt:      state.CreatedAt.UTC().Format(time.RFC3339),
		Grid:           make([]string, 0, snap.Rows),
		Cells:          make([][]CellView, 0, snap.Rows),
	}
	if disclose {
		seed := state.Seed
		view.Seed = &seed
	}
	for _, row := range snap.Cells {
		cells := make([]CellView, 0, len(row))
		var line strings.Builder
		for _, cell := range row {
			cv := projectCell(cell, disclose)
			cells = append(cells, cv)
			line.WriteByte(glyph(cell, cv))
		}
		view.Cells = append(view.Cells, cells)
		view.Grid = append(view.Grid, line.String())
	}
	return view
}

func projectCell(cell minesweeper.Cell, disclose bool) CellView {
	cv := CellView{State: cell.State.String()}
	if cell.State != minesweeper.CellRevealed && !disclose {
		return cv
	}
	if cell.HasMine {
		cv.Mine = true
		return cv
	}
	count := cell.NeighboringMines
	cv.Count = &count
	return cv
}

func glyph(cell minesweeper.Cell, cv CellView) byte {
	switch {
	case cell.State == minesweeper.CellFlagged:
		return 'F'
	case cv.Mine:
		return '*'
	case cell.State == minesweeper.CellHidden:
		return '#'
	case cv.Count != nil && *cv.Count > 0:
		return byte('0' + *cv.Count)
	default:
		return '.'
	}
}
