package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/louisbranch/minefield/internal/platform/errors"
	"github.com/louisbranch/minefield/internal/services/minefield/storage"
)

func wonGame(t *testing.T, env *testEnv, player string) string {
	t.Helper()
	view := env.newGame(t, NewGameInput{Rows: intPtr(1), Cols: intPtr(2), Mines: intPtr(1), PlayerName: player})
	_, out, err := RevealHandler(env.deps)(context.Background(), nil, MoveInput{GameID: view.GameID, Row: 0, Col: 0})
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if out.Outcome != "WON" {
		t.Fatalf("outcome = %q, want WON", out.Outcome)
	}
	return view.GameID
}

func TestRecordScoreHandler(t *testing.T) {
	t.Run("records once", func(t *testing.T) {
		env := newTestEnv()
		gameID := wonGame(t, env, "")
		handler := RecordScoreHandler(env.deps)

		result, out, err := handler(context.Background(), nil, RecordScoreInput{GameID: gameID, PlayerName: "Bo"})
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		if out.Score.PlayerName != "Bo" || out.Score.Score != 0 || out.Score.ID != "score-1" {
			t.Fatalf("unexpected score: %+v", out.Score)
		}
		if got := resultText(t, result); got != "Recorded 0 seconds for Bo." {
			t.Fatalf("summary = %q", got)
		}
		if _, err := time.Parse(time.RFC3339, out.Score.RecordedAt); err != nil {
			t.Fatalf("recorded_at %q: %v", out.Score.RecordedAt, err)
		}

		_, _, err = handler(context.Background(), nil, RecordScoreInput{GameID: gameID, PlayerName: "Bo"})
		requireCode(t, err, apperrors.CodeScoreAlreadyTaken)
		if env.store.count() != 1 {
			t.Fatalf("stored scores = %d, want 1", env.store.count())
		}
	})

	t.Run("game not won", func(t *testing.T) {
		env := newTestEnv()
		view := env.newGame(t, NewGameInput{})
		_, _, err := RecordScoreHandler(env.deps)(context.Background(), nil, RecordScoreInput{GameID: view.GameID, PlayerName: "Ana"})
		requireCode(t, err, apperrors.CodeGameNotWon)
	})

	t.Run("name required", func(t *testing.T) {
		env := newTestEnv()
		gameID := wonGame(t, env, "")
		_, _, err := RecordScoreHandler(env.deps)(context.Background(), nil, RecordScoreInput{GameID: gameID, PlayerName: "  "})
		requireCode(t, err, apperrors.CodePlayerNameEmpty)
	})

	t.Run("store failure releases claim", func(t *testing.T) {
		env := newTestEnv()
		gameID := wonGame(t, env, "")
		env.store.appendErr = errors.New("disk full")
		handler := RecordScoreHandler(env.deps)

		_, _, err := handler(context.Background(), nil, RecordScoreInput{GameID: gameID, PlayerName: "Ana"})
		requireCode(t, err, apperrors.CodeUnknown)
		if err.Error() != "UNKNOWN: an unexpected error occurred" {
			t.Fatalf("error leaks internals: %q", err.Error())
		}

		env.store.appendErr = nil
		if _, _, err := handler(context.Background(), nil, RecordScoreInput{GameID: gameID, PlayerName: "Ana"}); err != nil {
			t.Fatalf("retry after failure: %v", err)
		}
	})
}

func TestListScoresHandler(t *testing.T) {
	t.Run("defaults and filter", func(t *testing.T) {
		env := newTestEnv()
		wonGame(t, env, "Ana")
		wonGame(t, env, "Bo")

		result, out, err := ListScoresHandler(env.deps)(context.Background(), nil, ListScoresInput{Filter: "score < 60"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(out.Scores) != 2 || out.Scores[0].PlayerName != "Ana" {
			t.Fatalf("unexpected scores: %+v", out.Scores)
		}
		if env.store.lastList.PageSize != 10 {
			t.Fatalf("page size = %d, want 10", env.store.lastList.PageSize)
		}
		if env.store.lastList.Filter.Clause != "seconds < ?" {
			t.Fatalf("filter clause = %q", env.store.lastList.Filter.Clause)
		}
		if got := resultText(t, result); got != "2 scores listed." {
			t.Fatalf("summary = %q", got)
		}
	})

	t.Run("page size capped", func(t *testing.T) {
		env := newTestEnv()
		if _, _, err := ListScoresHandler(env.deps)(context.Background(), nil, ListScoresInput{PageSize: 1000}); err != nil {
			t.Fatalf("list: %v", err)
		}
		if env.store.lastList.PageSize != 100 {
			t.Fatalf("page size = %d, want 100", env.store.lastList.PageSize)
		}
	})

	t.Run("next page token", func(t *testing.T) {
		env := newTestEnv()
		wonGame(t, env, "Ana")
		wonGame(t, env, "Bo")
		_, out, err := ListScoresHandler(env.deps)(context.Background(), nil, ListScoresInput{PageSize: 1})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(out.Scores) != 1 || out.NextPageToken != "next" {
			t.Fatalf("unexpected page: %+v", out)
		}
	})

	t.Run("invalid filter", func(t *testing.T) {
		env := newTestEnv()
		_, _, err := ListScoresHandler(env.deps)(context.Background(), nil, ListScoresInput{Filter: "mines = 3"})
		requireCode(t, err, apperrors.CodeInvalidFilter)
	})

	t.Run("invalid page token", func(t *testing.T) {
		env := newTestEnv()
		_, _, err := ListScoresHandler(env.deps)(context.Background(), nil, ListScoresInput{PageToken: "bad"})
		requireCode(t, err, apperrors.CodeInvalidPageToken)
	})
}

func TestClearScoresHandler(t *testing.T) {
	env := newTestEnv()
	wonGame(t, env, "Ana")
	result, out, err := ClearScoresHandler(env.deps)(context.Background(), nil, ClearScoresInput{})
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if out.Removed != 1 || env.store.count() != 0 {
		t.Fatalf("removed = %d, remaining = %d", out.Removed, env.store.count())
	}
	if got := resultText(t, result); got != "1 scores cleared." {
		t.Fatalf("summary = %q", got)
	}
	if !env.notified.has(ScoresURI) {
		t.Fatal("expected scores notification")
	}
}

func TestClassifyStorageErrors(t *testing.T) {
	tcs := map[error]apperrors.Code{
		storage.ErrAlreadyExists:    apperrors.CodeScoreAlreadyTaken,
		storage.ErrInvalidPageToken: apperrors.CodeInvalidPageToken,
		storage.ErrNotFound:         apperrors.CodeNotFound,
		errors.New("boom"):          apperrors.CodeUnknown,
	}
	for err, want := range tcs {
		if got := classify(err).Code; got != want {
			t.Fatalf("classify(%v) = %s, want %s", err, got, want)
		}
	}
}
