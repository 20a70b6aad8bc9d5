// Package scores implements the leaderboard maintenance command.
package scores

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	entrypoint "github.com/louisbranch/minefield/internal/platform/cmd"
	"github.com/louisbranch/minefield/internal/services/minefield/filter"
	"github.com/louisbranch/minefield/internal/services/minefield/storage"
	scoresqlite "github.com/louisbranch/minefield/internal/services/minefield/storage/sqlite"
)

const maxLimit = 100

// Config holds scores command configuration.
type Config struct {
	DBPath    string `env:"MINEFIELD_DB_PATH" envDefault:"data/minefield.db"`
	Limit     int
	Filter    string
	PageToken string
	Clear     bool
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "score database path")
	fs.IntVar(&cfg.Limit, "limit", 10, "maximum scores to print (max 100)")
	fs.StringVar(&cfg.Filter, "filter", "", "filter over player_name, score and recorded_at, e.g. 'score < 60'")
	fs.StringVar(&cfg.PageToken, "page-token", "", "token printed by a previous listing")
	fs.BoolVar(&cfg.Clear, "clear", false, "delete every score")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return Config{}, errors.New("db path is required")
	}
	if cfg.Limit <= 0 || cfg.Limit > maxLimit {
		return Config{}, fmt.Errorf("limit must be between 1 and %d", maxLimit)
	}
	if cfg.Clear && (cfg.Filter != "" || cfg.PageToken != "") {
		return Config{}, errors.New("-clear cannot be combined with -filter or -page-token")
	}
	return cfg, nil
}

// Run lists or clears the leaderboard and writes the result to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceScores, func(ctx context.Context) error {
		return run(ctx, cfg, out)
	})
}

func run(ctx context.Context, cfg Config, out io.Writer) error {
	store, err := scoresqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open score store: %w", err)
	}
	defer store.Close()

	if cfg.Clear {
		removed, err := store.ClearScores(ctx)
		if err != nil {
			return fmt.Errorf("clear scores: %w", err)
		}
		fmt.Fprintf(out, "Cleared %d scores.\n", removed)
		return nil
	}
	return list(ctx, store, cfg, out)
}

func list(ctx context.Context, store storage.ScoreStore, cfg Config, out io.Writer) error {
	cond, err := filter.ParseScoreFilter(cfg.Filter)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}
	page, err := store.ListScores(ctx, storage.ListOptions{
		PageSize:  cfg.Limit,
		PageToken: cfg.PageToken,
		Filter:    cond,
	})
	if err != nil {
		return fmt.Errorf("list scores: %w", err)
	}
	if len(page.Scores) == 0 {
		fmt.Fprintln(out, "No scores.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLAYER\tSECONDS\tBOARD\tRECORDED")
	for _, score := range page.Scores {
		fmt.Fprintf(w, "%s\t%d\t%dx%d/%d\t%s\n",
			score.PlayerName,
			score.Seconds,
			score.Rows, score.Cols, score.Mines,
			score.RecordedAt.UTC().Format(time.RFC3339),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if page.NextPageToken != "" {
		fmt.Fprintf(out, "Next page: -page-token %s\n", page.NextPageToken)
	}
	return nil
}
