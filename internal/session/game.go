// Package session tracks live minesweeper games.
//
// A Game pairs one board with the stopwatch that times it and guards both with
// a mutex, so transports may serve concurrent requests for the same game. The
// Manager owns the set of live games.
package session

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/minefield/internal/minesweeper"
)

var (
	// ErrGameNotFound indicates no live game has the requested ID.
	ErrGameNotFound = errors.New("game not found")
	// ErrGameLimit indicates the manager holds its maximum number of
	// undecided games.
	ErrGameLimit = errors.New("too many games in progress")
	// ErrNotWon indicates a score was requested for a game that is not won.
	ErrNotWon = errors.New("game is not won")
	// ErrScoreRecorded indicates the game already produced its score.
	ErrScoreRecorded = errors.New("score already recorded for this game")
	// ErrPlayerNameEmpty indicates a score was requested without a name.
	ErrPlayerNameEmpty = errors.New("player name is required")
)

// Game is one board plus its timing and bookkeeping.
type Game struct {
	mu            sync.Mutex
	id            string
	board         *minesweeper.Board
	watch         *Stopwatch
	clock         Clock
	player        string
	seed          int64
	createdAt     time.Time
	scoreRecorded bool
}

// MoveResult describes the game right after a move.
type MoveResult struct {
	Previous minesweeper.Status
	Status   minesweeper.Status
	Elapsed  int
}

// Decided reports whether this move ended the game.
func (r MoveResult) Decided() bool {
	return !r.Previous.Terminal() && r.Status.Terminal()
}

// Won reports whether this move won the game.
func (r MoveResult) Won() bool {
	return r.Decided() && r.Status == minesweeper.StatusWon
}

// State is a read-only view of a game.
type State struct {
	ID            string
	PlayerName    string
	Seed          int64
	CreatedAt     time.Time
	Elapsed       int
	TimerRunning  bool
	ScoreRecorded bool
	Board         minesweeper.Snapshot
}

// Record is the score a won game yields.
type Record struct {
	GameID     string
	PlayerName string
	Seconds    int
	Rows       int
	Cols       int
	Mines      int
	RecordedAt time.Time
}

func newGame(id string, board *minesweeper.Board, clock Clock, player string, seed int64) *Game {
	return &Game{
		id:        id,
		board:     board,
		watch:     NewStopwatch(clock),
		clock:     clock,
		player:    strings.TrimSpace(player),
		seed:      seed,
		createdAt: clock().UTC(),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// InBounds reports whether (row, col) lies on the board.
func (g *Game) InBounds(row, col int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.InBounds(row, col)
}

// Reveal opens a cell. The stopwatch starts with the move that places the
// mines and stops as soon as the game is decided.
func (g *Game) Reveal(row, col int) MoveResult {
	return g.move(func(b *minesweeper.Board) { b.Reveal(row, col) })
}

// Flag toggles a flag on a cell.
func (g *Game) Flag(row, col int) MoveResult {
	return g.move(func(b *minesweeper.Board) { b.Flag(row, col) })
}

// Chord reveals the neighbours of a satisfied numbered cell.
func (g *Game) Chord(row, col int) MoveResult {
	return g.move(func(b *minesweeper.Board) { b.Chord(row, col) })
}

// Reset starts the same board over. The generator is re-seeded so the next
// reveal at the same cell yields the layout the game's seed describes.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.board.ResetWithRand(rand.New(rand.NewSource(g.seed)))
	g.watch.Reset()
	g.scoreRecorded = false
}

// State returns a snapshot of the game.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return State{
		ID:            g.id,
		PlayerName:    g.player,
		Seed:          g.seed,
		CreatedAt:     g.createdAt,
		Elapsed:       g.watch.Elapsed(),
		TimerRunning:  g.watch.Running(),
		ScoreRecorded: g.scoreRecorded,
		Board:         g.board.Snapshot(),
	}
}

// ClaimScore marks the game's score as recorded and returns it. An empty
// player falls back to the name given at creation. Call ReleaseScore if the
// record could not be persisted.
func (g *Game) ClaimScore(player string) (Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.board.Status() != minesweeper.StatusWon {
		return Record{}, ErrNotWon
	}
	if g.scoreRecorded {
		return Record{}, ErrScoreRecorded
	}
	name := strings.TrimSpace(player)
	if name == "" {
		name = g.player
	}
	if name == "" {
		return Record{}, ErrPlayerNameEmpty
	}
	g.scoreRecorded = true
	return Record{
		GameID:     g.id,
		PlayerName: name,
		Seconds:    g.watch.Elapsed(),
		Rows:       g.board.Rows(),
		Cols:       g.board.Cols(),
		Mines:      g.board.Mines(),
		RecordedAt: g.clock().UTC(),
	}, nil
}

// ReleaseScore undoes a ClaimScore whose record was not stored.
func (g *Game) ReleaseScore() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scoreRecorded = false
}

func (g *Game) status() minesweeper.Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Status()
}

func (g *Game) move(fn func(*minesweeper.Board)) MoveResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	previous := g.board.Status()
	placed := g.board.FirstMoveDone()
	fn(g.board)
	if !placed && g.board.FirstMoveDone() {
		g.watch.Start()
	}
	if g.board.Status().Terminal() {
		g.watch.Stop()
	}
	return MoveResult{
		Previous: previous,
		Status:   g.board.Status(),
		Elapsed:  g.watch.Elapsed(),
	}
}
