package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/minefield/internal/minesweeper"
	"github.com/louisbranch/minefield/internal/session"
)

func layoutState(t *testing.T, b *minesweeper.Board) session.State {
	t.Helper()
	return session.State{
		ID:        "g1",
		Seed:      42,
		CreatedAt: time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC),
		Board:     b.Snapshot(),
	}
}

func TestProjectBoardHidesUnrevealedCells(t *testing.T) {
	b, err := minesweeper.NewFromLayout(2, 3, []minesweeper.Position{{Row: 0, Col: 0}})
	if err != nil {
		t.Fatalf("NewFromLayout: %v", err)
	}
	b.Reveal(1, 1)
	b.Flag(0, 0)

	view := ProjectBoard(layoutState(t, b), false)
	want := []string{"F##", "#1#"}
	for i := range want {
		if view.Grid[i] != want[i] {
			t.Fatalf("grid = %q, want %q", view.Grid, want)
		}
	}
	if view.Cells[0][0].Mine || view.Cells[0][1].Count != nil {
		t.Fatalf("hidden information leaked: %+v", view.Cells[0])
	}
	if c := view.Cells[1][1].Count; c == nil || *c != 1 {
		t.Fatalf("revealed count = %v, want 1", c)
	}
	if view.MinesRemaining != 0 || view.Status != "ONGOING" {
		t.Fatalf("unexpected header: %+v", view)
	}
	if view.CreatedAt != "2026-02-03T04:05:06Z" {
		t.Fatalf("created_at = %q", view.CreatedAt)
	}
	if view.Seed != nil {
		t.Fatalf("seed leaked while ongoing: %d", *view.Seed)
	}
}

func TestProjectBoardRevealMines(t *testing.T) {
	b, err := minesweeper.NewFromLayout(2, 3, []minesweeper.Position{{Row: 0, Col: 0}})
	if err != nil {
		t.Fatalf("NewFromLayout: %v", err)
	}
	view := ProjectBoard(layoutState(t, b), true)
	if !view.Cells[0][0].Mine || view.Grid[0][0] != '*' {
		t.Fatalf("mine not disclosed: %+v", view.Grid)
	}
	if view.Seed == nil || *view.Seed != 42 {
		t.Fatalf("seed = %v, want 42 with mines revealed", view.Seed)
	}
	if view.Cells[0][0].State != "hidden" {
		t.Fatalf("state = %q, want hidden", view.Cells[0][0].State)
	}
	if c := view.Cells[1][2].Count; c == nil || *c != 0 {
		t.Fatalf("disclosed count = %v, want 0", c)
	}
}

func TestProjectBoardAfterWin(t *testing.T) {
	b, err := minesweeper.NewFromLayout(1, 3, []minesweeper.Position{{Row: 0, Col: 2}})
	if err != nil {
		t.Fatalf("NewFromLayout: %v", err)
	}
	b.Flag(0, 2)
	b.Reveal(0, 0)

	view := ProjectBoard(layoutState(t, b), false)
	if view.Status != "WON" {
		t.Fatalf("status = %q, want WON", view.Status)
	}
	if view.Grid[0] != ".1F" {
		t.Fatalf("grid = %q, want .1F", view.Grid[0])
	}
	if !view.Cells[0][2].Mine {
		t.Fatal("expected flagged mine disclosed after the game")
	}
	if view.Seed == nil || *view.Seed != 42 {
		t.Fatalf("seed = %v, want 42 after the game", view.Seed)
	}
}

func TestProjectBoardSeedOmittedFromJSONWhileOngoing(t *testing.T) {
	b, err := minesweeper.NewFromLayout(2, 2, []minesweeper.Position{{Row: 1, Col: 1}})
	if err != nil {
		t.Fatalf("NewFromLayout: %v", err)
	}
	b.Reveal(0, 0)

	data, err := json.Marshal(ProjectBoard(layoutState(t, b), false))
	if err != nil {
		t.Fatalf("marshal view: %v", err)
	}
	if strings.Contains(string(data), `"seed"`) {
		t.Fatalf("ongoing view carries a seed: %s", data)
	}
}
