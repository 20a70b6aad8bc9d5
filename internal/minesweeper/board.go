// Package minesweeper implements the board rules for a single mine-clearing game.
//
// A Board owns its grid and is not safe for concurrent use; callers that share
// a Board across goroutines serialize access themselves.
package minesweeper

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/louisbranch/minefield/internal/random"
)

// Default board dimensions and mine total.
const (
	DefaultRows  = 10
	DefaultCols  = 10
	DefaultMines = 15
)

// ErrInvalidConfiguration indicates board dimensions or mine total cannot
// produce a playable board.
var ErrInvalidConfiguration = errors.New("invalid board configuration")

// ErrOutOfBounds indicates a coordinate outside the board.
var ErrOutOfBounds = errors.New("coordinates out of bounds")

// CellState is the visible state of a cell.
type CellState int

const (
	CellHidden CellState = iota
	CellRevealed
	CellFlagged
)

func (s CellState) String() string {
	switch s {
	case CellHidden:
		return "hidden"
	case CellRevealed:
		return "revealed"
	case CellFlagged:
		return "flagged"
	default:
		return "unknown"
	}
}

// Status is the outcome of the game so far.
type Status int

const (
	StatusOngoing Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "ONGOING"
	case StatusWon:
		return "WON"
	case StatusLost:
		return "LOST"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the game has been decided.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// Cell is one square of the grid.
type Cell struct {
	State            CellState
	HasMine          bool
	NeighboringMines int
}

// Position addresses a cell by row and column.
type Position struct {
	Row int
	Col int
}

// Config describes the board to build.
type Config struct {
	Rows  int
	Cols  int
	Mines int
	// Rand drives mine placement. When nil, a generator seeded from
	// crypto/rand is used.
	Rand *rand.Rand
}

// DefaultConfig returns the classic 10x10 board with 15 mines.
func DefaultConfig() Config {
	return Config{Rows: DefaultRows, Cols: DefaultCols, Mines: DefaultMines}
}

// Validate checks that the configuration describes a playable board.
func (c Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidConfiguration, c.Rows, c.Cols)
	}
	if c.Mines < 0 {
		return fmt.Errorf("%w: mine count must be non-negative, got %d", ErrInvalidConfiguration, c.Mines)
	}
	if c.Mines >= c.Rows*c.Cols {
		return fmt.Errorf("%w: %d mines do not fit a %dx%d board with a safe first move", ErrInvalidConfiguration, c.Mines, c.Rows, c.Cols)
	}
	return nil
}

// Board is the grid plus the game state machine around it.
type Board struct {
	rows          int
	cols          int
	mines         int
	cells         []Cell
	firstMoveDone bool
	status        Status
	rng           *rand.Rand
}

// New builds a fresh board. Mines are not placed until the first reveal.
func New(cfg Config) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := cfg.Rand
	if rng == nil {
		var err error
		rng, _, err = random.NewRand(nil)
		if err != nil {
			return nil, fmt.Errorf("seed board: %w", err)
		}
	}
	b := &Board{
		rows:  cfg.Rows,
		cols:  cfg.Cols,
		mines: cfg.Mines,
		rng:   rng,
	}
	b.Reset()
	return b, nil
}

// NewFromLayout builds a board whose mines are already placed at the given
// positions, skipping first-move placement. It is meant for replays and
// fixtures; duplicate or out-of-range positions are rejected.
func NewFromLayout(rows, cols int, mines []Position) (*Board, error) {
	cfg := Config{Rows: rows, Cols: cols, Mines: len(mines), Rand: rand.New(rand.NewSource(0))}
	b, err := New(cfg)
	if err != nil {
		return nil, err
	}
	for _, p := range mines {
		if !b.InBounds(p.Row, p.Col) {
			return nil, fmt.Errorf("%w: mine at (%d,%d) is outside the board", ErrInvalidConfiguration, p.Row, p.Col)
		}
		if b.at(p.Row, p.Col).HasMine {
			return nil, fmt.Errorf("%w: duplicate mine at (%d,%d)", ErrInvalidConfiguration, p.Row, p.Col)
		}
		b.plantMine(p.Row, p.Col)
	}
	b.firstMoveDone = true
	return b, nil
}

// Reset clears the grid, removes all mines and reopens the game.
func (b *Board) Reset() {
	b.cells = make([]Cell, b.rows*b.cols)
	b.firstMoveDone = false
	b.status = StatusOngoing
}

// ResetWithRand resets the board and places the next mines with r. A nil r
// keeps the current generator.
func (b *Board) ResetWithRand(r *rand.Rand) {
	if r != nil {
		b.rng = r
	}
	b.Reset()
}

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *Board) Cols() int { return b.cols }

// Mines returns the configured mine total.
func (b *Board) Mines() int { return b.mines }

// Status returns the current game status.
func (b *Board) Status() Status { return b.status }

// FirstMoveDone reports whether mines have been placed.
func (b *Board) FirstMoveDone() bool { return b.firstMoveDone }

// InBounds reports whether (row, col) addresses a cell on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// Cell returns a copy of the cell at (row, col).
func (b *Board) Cell(row, col int) (Cell, bool) {
	if !b.InBounds(row, col) {
		return Cell{}, false
	}
	return *b.at(row, col), true
}

// FlagCount returns the number of flagged cells.
func (b *Board) FlagCount() int {
	count := 0
	for i := range b.cells {
		if b.cells[i].State == CellFlagged {
			count++
		}
	}
	return count
}

// RevealedCount returns the number of revealed cells.
func (b *Board) RevealedCount() int {
	count := 0
	for i := range b.cells {
		if b.cells[i].State == CellRevealed {
			count++
		}
	}
	return count
}

// MinePositions lists mined cells in row-major order. It is empty before the
// first reveal.
func (b *Board) MinePositions() []Position {
	var out []Position
	for i := range b.cells {
		if b.cells[i].HasMine {
			out = append(out, Position{Row: i / b.cols, Col: i % b.cols})
		}
	}
	return out
}

// Snapshot is a read-only copy of the board.
type Snapshot struct {
	Rows          int
	Cols          int
	Mines         int
	Status        Status
	FirstMoveDone bool
	FlagsPlaced   int
	Revealed      int
	Cells         [][]Cell
}

// Snapshot copies the current grid and status.
func (b *Board) Snapshot() Snapshot {
	cells := make([][]Cell, b.rows)
	for r := 0; r < b.rows; r++ {
		cells[r] = make([]Cell, b.cols)
		copy(cells[r], b.cells[r*b.cols:(r+1)*b.cols])
	}
	return Snapshot{
		Rows:          b.rows,
		Cols:          b.cols,
		Mines:         b.mines,
		Status:        b.status,
		FirstMoveDone: b.firstMoveDone,
		FlagsPlaced:   b.FlagCount(),
		Revealed:      b.RevealedCount(),
		Cells:         cells,
	}
}

func (b *Board) at(row, col int) *Cell {
	return &b.cells[row*b.cols+col]
}

// neighbors calls fn for every in-bounds Moore neighbour of (row, col).
func (b *Board) neighbors(row, col int, fn func(r, c int)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if b.InBounds(r, c) {
				fn(r, c)
			}
		}
	}
}
