package domain

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func readResource(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestGameResourceHandler(t *testing.T) {
	env := newTestEnv()
	view := env.newGame(t, NewGameInput{Preset: "beginner"})
	handler := GameResourceHandler(env.deps)

	result, err := handler(context.Background(), readResource(GameURI(view.GameID)))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(result.Contents) != 1 || result.Contents[0].MIMEType != "application/json" {
		t.Fatalf("unexpected contents: %+v", result.Contents)
	}
	var payload BoardView
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.GameID != view.GameID || payload.Rows != 9 {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	for _, uri := range []string{"", "other://x", "minefield://games/", "minefield://games/a/b"} {
		if _, err := handler(context.Background(), readResource(uri)); err == nil {
			t.Fatalf("expected error for uri %q", uri)
		}
	}
	if _, err := handler(context.Background(), readResource(GameURI("missing"))); err == nil {
		t.Fatal("expected error for unknown game")
	}
}

func TestScoresResourceHandler(t *testing.T) {
	env := newTestEnv()
	wonGame(t, env, "Ana")

	result, err := ScoresResourceHandler(env.deps)(context.Background(), readResource(ScoresURI))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var payload ScoresPayload
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Scores) != 1 || payload.Scores[0].PlayerName != "Ana" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if result.Contents[0].URI != ScoresURI {
		t.Fatalf("uri = %q", result.Contents[0].URI)
	}
}
