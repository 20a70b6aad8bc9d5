package storage

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Cursor marks the last score of a page in leaderboard order.
type Cursor struct {
	Seconds    int    `json:"s"`
	RecordedAt int64  `json:"t"`
	ID         string `json:"id"`
	FilterHash string `json:"f,omitempty"`
}

// CursorAfter builds the cursor that resumes after score.
func CursorAfter(score Score, filter Condition) Cursor {
	return Cursor{
		Seconds:    score.Seconds,
		RecordedAt: score.RecordedAt.UTC().UnixMilli(),
		ID:         score.ID,
		FilterHash: HashFilter(filter),
	}
}

// EncodeCursor renders a cursor as an opaque page token.
func EncodeCursor(c Cursor) (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

// DecodeCursor parses a page token and checks it was issued for filter.
func DecodeCursor(token string, filter Condition) (Cursor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Cursor{}, fmt.Errorf("%w: empty token", ErrInvalidPageToken)
	}
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
	}
	if c.ID == "" {
		return Cursor{}, fmt.Errorf("%w: missing score id", ErrInvalidPageToken)
	}
	if c.FilterHash != HashFilter(filter) {
		return Cursor{}, fmt.Errorf("%w: filter changed between pages", ErrInvalidPageToken)
	}
	return c, nil
}

// HashFilter returns a short stable digest of a filter, or "" when empty.
func HashFilter(filter Condition) string {
	if filter.Empty() {
		return ""
	}
	h := sha256.New()
	h.Write([]byte(filter.Clause))
	for _, param := range filter.Params {
		fmt.Fprintf(h, "\x00%T:%v", param, param)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
