// Package storage defines persistence contracts for minefield scores.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested score record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a score was already stored for the game.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInvalidPageToken indicates a page token that cannot be decoded or
	// belongs to a different filter.
	ErrInvalidPageToken = errors.New("invalid page token")
)

// Score is one completed game on the leaderboard.
type Score struct {
	ID         string
	GameID     string
	PlayerName string
	// Seconds is the whole seconds between the first reveal and the win.
	Seconds    int
	Rows       int
	Cols       int
	Mines      int
	RecordedAt time.Time
}

// Condition is a SQL WHERE fragment with positional parameters.
type Condition struct {
	Clause string
	Params []any
}

// Empty reports whether the condition filters nothing.
func (c Condition) Empty() bool {
	return c.Clause == ""
}

// ListOptions selects one page of scores ordered fastest first.
type ListOptions struct {
	PageSize  int
	PageToken string
	Filter    Condition
}

// ScorePage is one page of scores.
type ScorePage struct {
	Scores        []Score
	NextPageToken string
}

// ScoreStore persists leaderboard scores.
type ScoreStore interface {
	AppendScore(ctx context.Context, score Score) error
	GetScore(ctx context.Context, scoreID string) (Score, error)
	ListScores(ctx context.Context, opts ListOptions) (ScorePage, error)
	// ClearScores deletes every score and returns how many were removed.
	ClearScores(ctx context.Context) (int, error)
}
