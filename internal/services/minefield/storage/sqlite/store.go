// Package sqlite provides a SQLite-backed score store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/minefield/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/minefield/internal/services/minefield/storage"
	"github.com/louisbranch/minefield/internal/services/minefield/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const scoreColumns = `id, game_id, player_name, seconds, board_rows, board_cols, board_mines, recorded_at`

// Store persists scores in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite score store and applies embedded migrations. Missing
// parent directories are not created.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendScore inserts one score. A second score for the same game returns
// storage.ErrAlreadyExists.
func (s *Store) AppendScore(ctx context.Context, score storage.Score) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	scoreID := strings.TrimSpace(score.ID)
	gameID := strings.TrimSpace(score.GameID)
	playerName := strings.TrimSpace(score.PlayerName)
	if scoreID == "" {
		return fmt.Errorf("score id is required")
	}
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	if playerName == "" {
		return fmt.Errorf("player name is required")
	}
	if score.Seconds < 0 {
		return fmt.Errorf("seconds must not be negative")
	}
	recordedAt := score.RecordedAt.UTC()
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO scores (`+scoreColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		scoreID,
		gameID,
		playerName,
		score.Seconds,
		score.Rows,
		score.Cols,
		score.Mines,
		toMillis(recordedAt),
	)
	if err != nil {
		if isScoreUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("append score: %w", err)
	}
	return nil
}

// GetScore returns one score by ID.
func (s *Store) GetScore(ctx context.Context, scoreID string) (storage.Score, error) {
	if err := ctx.Err(); err != nil {
		return storage.Score{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Score{}, fmt.Errorf("storage is not configured")
	}
	scoreID = strings.TrimSpace(scoreID)
	if scoreID == "" {
		return storage.Score{}, fmt.Errorf("score id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+scoreColumns+` FROM scores WHERE id = ?`, scoreID)
	score, err := scanScore(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Score{}, storage.ErrNotFound
		}
		return storage.Score{}, fmt.Errorf("get score: %w", err)
	}
	return score, nil
}

// ListScores returns one page of scores, fastest first. Ties keep the
// earlier recording first.
func (s *Store) ListScores(ctx context.Context, opts storage.ListOptions) (storage.ScorePage, error) {
	if err := ctx.Err(); err != nil {
		return storage.ScorePage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ScorePage{}, fmt.Errorf("storage is not configured")
	}
	if opts.PageSize <= 0 {
		return storage.ScorePage{}, fmt.Errorf("page size must be greater than zero")
	}

	var (
		conditions []string
		params     []any
	)
	if !opts.Filter.Empty() {
		conditions = append(conditions, "("+opts.Filter.Clause+")")
		params = append(params, opts.Filter.Params...)
	}
	if strings.TrimSpace(opts.PageToken) != "" {
		cursor, err := storage.DecodeCursor(opts.PageToken, opts.Filter)
		if err != nil {
			return storage.ScorePage{}, err
		}
		conditions = append(conditions, "(seconds, recorded_at, id) > (?, ?, ?)")
		params = append(params, cursor.Seconds, cursor.RecordedAt, cursor.ID)
	}

	query := `SELECT ` + scoreColumns + ` FROM scores`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY seconds ASC, recorded_at ASC, id ASC LIMIT ?`
	params = append(params, opts.PageSize+1)

	rows, err := s.sqlDB.QueryContext(ctx, query, params...)
	if err != nil {
		return storage.ScorePage{}, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	page := storage.ScorePage{
		Scores: make([]storage.Score, 0, opts.PageSize),
	}
	for rows.Next() {
		score, err := scanScore(rows)
		if err != nil {
			return storage.ScorePage{}, fmt.Errorf("list scores: %w", err)
		}
		page.Scores = append(page.Scores, score)
	}
	if err := rows.Err(); err != nil {
		return storage.ScorePage{}, fmt.Errorf("list scores: %w", err)
	}
	if len(page.Scores) > opts.PageSize {
		page.Scores = page.Scores[:opts.PageSize]
		token, err := storage.EncodeCursor(storage.CursorAfter(page.Scores[opts.PageSize-1], opts.Filter))
		if err != nil {
			return storage.ScorePage{}, err
		}
		page.NextPageToken = token
	}
	return page, nil
}

// ClearScores deletes every score.
func (s *Store) ClearScores(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM scores`)
	if err != nil {
		return 0, fmt.Errorf("clear scores: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear scores: %w", err)
	}
	return int(removed), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScore(row rowScanner) (storage.Score, error) {
	var score storage.Score
	var recordedAt int64
	if err := row.Scan(
		&score.ID,
		&score.GameID,
		&score.PlayerName,
		&score.Seconds,
		&score.Rows,
		&score.Cols,
		&score.Mines,
		&recordedAt,
	); err != nil {
		return storage.Score{}, err
	}
	score.RecordedAt = fromMillis(recordedAt)
	return score, nil
}

func isScoreUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "scores.")
}

var _ storage.ScoreStore = (*Store)(nil)
