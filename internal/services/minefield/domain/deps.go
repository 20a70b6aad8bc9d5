package domain

import (
	"context"
	"strings"

	"github.com/louisbranch/minefield/internal/platform/i18n"
	"github.com/louisbranch/minefield/internal/platform/id"
	"github.com/louisbranch/minefield/internal/services/minefield/storage"
	"github.com/louisbranch/minefield/internal/session"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/message"
)

const (
	// ScoresURI addresses the leaderboard resource.
	ScoresURI = "minefield://scores"

	gameURIPrefix = "minefield://games/"
)

// GameURI addresses one game resource.
func GameURI(gameID string) string {
	return gameURIPrefix + gameID
}

var tracer = otel.Tracer("github.com/louisbranch/minefield/internal/services/minefield/domain")

// Deps carries the collaborators shared by every handler.
type Deps struct {
	Games  *session.Manager
	Scores storage.ScoreStore
	// Printer localizes summaries and error text. Nil uses the default locale.
	Printer *message.Printer
	// RevealMines discloses mine positions in every board view. Debug only.
	RevealMines bool
	// NewScoreID generates score identifiers. Nil uses id.NewID.
	NewScoreID func() (string, error)
	Notify     ResourceUpdateNotifier
}

func (d Deps) printer() *message.Printer {
	if d.Printer == nil {
		return i18n.Printer(i18n.Default())
	}
	return d.Printer
}

func (d Deps) newScoreID() (string, error) {
	if d.NewScoreID == nil {
		return id.NewID()
	}
	return d.NewScoreID()
}

func (d Deps) game(gameID string) (*session.Game, error) {
	if d.Games == nil {
		return nil, session.ErrGameNotFound
	}
	return d.Games.Get(strings.TrimSpace(gameID))
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
