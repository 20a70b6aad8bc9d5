package domain

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/louisbranch/minefield/internal/minesweeper"
	apperrors "github.com/louisbranch/minefield/internal/platform/errors"
	"github.com/louisbranch/minefield/internal/services/minefield/storage"
	"github.com/louisbranch/minefield/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type fakeScoreStore struct {
	mu        sync.Mutex
	scores    []storage.Score
	lastList  storage.ListOptions
	appendErr error
}

func (s *fakeScoreStore) AppendScore(_ context.Context, score storage.Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	for _, existing := range s.scores {
		if existing.GameID == score.GameID {
			return storage.ErrAlreadyExists
		}
	}
	s.scores = append(s.scores, score)
	return nil
}

func (s *fakeScoreStore) GetScore(_ context.Context, scoreID string) (storage.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, score := range s.scores {
		if score.ID == scoreID {
			return score, nil
		}
	}
	return storage.Score{}, storage.ErrNotFound
}

func (s *fakeScoreStore) ListScores(_ context.Context, opts storage.ListOptions) (storage.ScorePage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastList = opts
	if opts.PageToken == "bad" {
		return storage.ScorePage{}, storage.ErrInvalidPageToken
	}
	page := storage.ScorePage{}
	for i, score := range s.scores {
		if i == opts.PageSize {
			page.NextPageToken = "next"
			break
		}
		page.Scores = append(page.Scores, score)
	}
	return page, nil
}

func (s *fakeScoreStore) ClearScores(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := len(s.scores)
	s.scores = nil
	return removed, nil
}

func (s *fakeScoreStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scores)
}

type notifyRecorder struct {
	mu   sync.Mutex
	uris []string
}

func (r *notifyRecorder) notify(_ context.Context, uri string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uris = append(r.uris, uri)
}

func (r *notifyRecorder) has(uri string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, got := range r.uris {
		if got == uri {
			return true
		}
	}
	return false
}

type testEnv struct {
	deps     Deps
	store    *fakeScoreStore
	notified *notifyRecorder
}

func newTestEnv() *testEnv {
	store := &fakeScoreStore{}
	notified := &notifyRecorder{}
	next := 0
	return &testEnv{
		deps: Deps{
			Games:  session.NewManager(session.Options{}),
			Scores: store,
			NewScoreID: func() (string, error) {
				next++
				return "score-" + string(rune('0'+next)), nil
			},
			Notify: notified.notify,
		},
		store:    store,
		notified: notified,
	}
}

func intPtr(v int) *int { return &v }

func (e *testEnv) newGame(t *testing.T, input NewGameInput) BoardView {
	t.Helper()
	_, out, err := NewGameHandler(e.deps)(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return out.Game
}

func (e *testEnv) state(t *testing.T, gameID string) session.State {
	t.Helper()
	game, err := e.deps.Games.Get(gameID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	return game.State()
}

func (e *testEnv) firstMine(t *testing.T, gameID string) minesweeper.Position {
	t.Helper()
	for r, row := range e.state(t, gameID).Board.Cells {
		for c, cell := range row {
			if cell.HasMine {
				return minesweeper.Position{Row: r, Col: c}
			}
		}
	}
	t.Fatal("no mine placed")
	return minesweeper.Position{}
}

func requireCode(t *testing.T, err error, want apperrors.Code) {
	t.Helper()
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error = %v (%T), want *ToolError", err, err)
	}
	if toolErr.Code() != want {
		t.Fatalf("code = %s, want %s (%v)", toolErr.Code(), want, err)
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) != 1 {
		t.Fatalf("expected one content item, got %+v", result)
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want *mcp.TextContent", result.Content[0])
	}
	return text.Text
}
