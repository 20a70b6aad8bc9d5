package session

import (
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/minefield/internal/minesweeper"
)

func newTestManager(clock *fakeClock) *Manager {
	next := 0
	return NewManager(Options{
		MaxGames: 2,
		Clock:    clock.Now,
		NewID: func() (string, error) {
			next++
			return "game-" + string(rune('a'+next-1)), nil
		},
	})
}

func mustCreate(t *testing.T, m *Manager, req CreateRequest) *Game {
	t.Helper()
	game, err := m.Create(req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return game
}

// safeCells lists hidden cells without mines.
func safeCells(state State) []minesweeper.Position {
	var cells []minesweeper.Position
	for r, row := range state.Board.Cells {
		for c, cell := range row {
			if !cell.HasMine && cell.State == minesweeper.CellHidden {
				cells = append(cells, minesweeper.Position{Row: r, Col: c})
			}
		}
	}
	return cells
}

func minePosition(t *testing.T, state State) minesweeper.Position {
	t.Helper()
	for r, row := range state.Board.Cells {
		for c, cell := range row {
			if cell.HasMine {
				return minesweeper.Position{Row: r, Col: c}
			}
		}
	}
	t.Fatal("no mine on board")
	return minesweeper.Position{}
}

func TestGameTimerRunsFromFirstRevealUntilWin(t *testing.T) {
	clock := newFakeClock()
	m := newTestManager(clock)
	seed := int64(7)
	game := mustCreate(t, m, CreateRequest{Rows: 2, Cols: 2, Mines: 1, Seed: &seed, PlayerName: "Ana"})

	game.Flag(1, 1)
	clock.Advance(10 * time.Second)
	if state := game.State(); state.TimerRunning || state.Elapsed != 0 {
		t.Fatalf("flag before first reveal started timer: %+v", state)
	}
	game.Flag(1, 1)

	result := game.Reveal(0, 0)
	if result.Status != minesweeper.StatusOngoing || result.Decided() {
		t.Fatalf("first reveal result = %+v, want ongoing", result)
	}
	clock.Advance(5 * time.Second)

	var last MoveResult
	for _, pos := range safeCells(game.State()) {
		last = game.Reveal(pos.Row, pos.Col)
	}
	if !last.Won() {
		t.Fatalf("last move = %+v, want win", last)
	}
	if last.Elapsed != 5 {
		t.Fatalf("elapsed = %d, want 5", last.Elapsed)
	}

	clock.Advance(time.Minute)
	if got := game.State().Elapsed; got != 5 {
		t.Fatalf("elapsed after win = %d, want 5", got)
	}
}

func TestGameTimerStopsOnLoss(t *testing.T) {
	clock := newFakeClock()
	m := newTestManager(clock)
	seed := int64(11)
	game := mustCreate(t, m, CreateRequest{Rows: 2, Cols: 2, Mines: 1, Seed: &seed})

	game.Reveal(0, 0)
	clock.Advance(3 * time.Second)
	mine := minePosition(t, game.State())
	result := game.Reveal(mine.Row, mine.Col)
	if result.Status != minesweeper.StatusLost || !result.Decided() || result.Won() {
		t.Fatalf("mine reveal result = %+v, want loss", result)
	}
	clock.Advance(time.Minute)
	if state := game.State(); state.TimerRunning || state.Elapsed != 3 {
		t.Fatalf("timer after loss running=%v elapsed=%d", state.TimerRunning, state.Elapsed)
	}
	if _, err := game.ClaimScore("Ana"); !errors.Is(err, ErrNotWon) {
		t.Fatalf("ClaimScore error = %v, want %v", err, ErrNotWon)
	}
}

func TestGameClaimScoreOnce(t *testing.T) {
	clock := newFakeClock()
	m := newTestManager(clock)
	game := mustCreate(t, m, CreateRequest{Rows: 1, Cols: 2, Mines: 1, PlayerName: " Ana "})

	// One safe cell: the first reveal wins.
	if result := game.Reveal(0, 0); !result.Won() {
		t.Fatalf("reveal result = %+v, want win", result)
	}

	record, err := game.ClaimScore("")
	if err != nil {
		t.Fatalf("ClaimScore: %v", err)
	}
	if record.PlayerName != "Ana" || record.GameID != game.ID() || record.Seconds != 0 {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.Rows != 1 || record.Cols != 2 || record.Mines != 1 {
		t.Fatalf("unexpected record dimensions: %+v", record)
	}
	if !record.RecordedAt.Equal(clock.now) {
		t.Fatalf("recorded at = %v, want %v", record.RecordedAt, clock.now)
	}
	if _, err := game.ClaimScore("Bo"); !errors.Is(err, ErrScoreRecorded) {
		t.Fatalf("second ClaimScore error = %v, want %v", err, ErrScoreRecorded)
	}

	game.ReleaseScore()
	record, err = game.ClaimScore("Bo")
	if err != nil {
		t.Fatalf("ClaimScore after release: %v", err)
	}
	if record.PlayerName != "Bo" {
		t.Fatalf("player = %q, want Bo", record.PlayerName)
	}
}

func TestGameClaimScoreRequiresName(t *testing.T) {
	m := newTestManager(newFakeClock())
	game := mustCreate(t, m, CreateRequest{Rows: 1, Cols: 2, Mines: 1})
	game.Reveal(0, 1)
	if _, err := game.ClaimScore("  "); !errors.Is(err, ErrPlayerNameEmpty) {
		t.Fatalf("ClaimScore error = %v, want %v", err, ErrPlayerNameEmpty)
	}
}

func TestGameResetClearsTimerAndScore(t *testing.T) {
	clock := newFakeClock()
	m := newTestManager(clock)
	game := mustCreate(t, m, CreateRequest{Rows: 1, Cols: 2, Mines: 1, PlayerName: "Ana"})
	game.Reveal(0, 0)
	if _, err := game.ClaimScore(""); err != nil {
		t.Fatalf("ClaimScore: %v", err)
	}

	game.Reset()

	state := game.State()
	if state.Board.Status != minesweeper.StatusOngoing || state.Board.FirstMoveDone {
		t.Fatalf("board not reset: %+v", state.Board)
	}
	if state.ScoreRecorded || state.Elapsed != 0 || state.TimerRunning {
		t.Fatalf("game not reset: %+v", state)
	}
}

func TestGameSeedReproducesLayout(t *testing.T) {
	m := newTestManager(newFakeClock())
	seed := int64(42)
	a := mustCreate(t, m, CreateRequest{Rows: 9, Cols: 9, Mines: 10, Seed: &seed})
	b := mustCreate(t, m, CreateRequest{Rows: 9, Cols: 9, Mines: 10, Seed: &seed})
	a.Reveal(4, 4)
	b.Reveal(4, 4)

	sa, sb := a.State(), b.State()
	if sa.Seed != seed || sb.Seed != seed {
		t.Fatalf("seeds = %d/%d, want %d", sa.Seed, sb.Seed, seed)
	}
	for r := range sa.Board.Cells {
		for c := range sa.Board.Cells[r] {
			if sa.Board.Cells[r][c] != sb.Board.Cells[r][c] {
				t.Fatalf("cell (%d,%d) differs: %+v vs %+v", r, c, sa.Board.Cells[r][c], sb.Board.Cells[r][c])
			}
		}
	}
}

func TestGameResetReplaysSeededLayout(t *testing.T) {
	m := newTestManager(newFakeClock())
	seed := int64(99)
	game := mustCreate(t, m, CreateRequest{Rows: 9, Cols: 9, Mines: 10, Seed: &seed})
	game.Reveal(4, 4)
	before := game.State().Board.Cells

	game.Reset()
	game.Reveal(4, 4)
	after := game.State()

	if after.Seed != seed {
		t.Fatalf("seed = %d, want %d", after.Seed, seed)
	}
	for r := range before {
		for c := range before[r] {
			if before[r][c] != after.Board.Cells[r][c] {
				t.Fatalf("cell (%d,%d) differs after reset: %+v vs %+v", r, c, before[r][c], after.Board.Cells[r][c])
			}
		}
	}
}
