package domain

import (
	"errors"

	"github.com/louisbranch/minefield/internal/minesweeper"
	apperrors "github.com/louisbranch/minefield/internal/platform/errors"
	"github.com/louisbranch/minefield/internal/services/minefield/storage"
	"github.com/louisbranch/minefield/internal/session"
	"golang.org/x/text/message"
)

// ToolError is the error a handler returns to the MCP client. Its text is the
// translated user message; the coded domain error stays reachable through
// errors.As.
type ToolError struct {
	text string
	err  *apperrors.Error
}

func (e *ToolError) Error() string { return e.text }

func (e *ToolError) Unwrap() error { return e.err }

// Code returns the machine-readable error code.
func (e *ToolError) Code() apperrors.Code { return e.err.Code }

// classify maps package sentinels to coded domain errors.
func classify(err error) *apperrors.Error {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		return domainErr
	}
	code := apperrors.CodeUnknown
	switch {
	case errors.Is(err, minesweeper.ErrInvalidConfiguration):
		code = apperrors.CodeInvalidConfiguration
	case errors.Is(err, minesweeper.ErrOutOfBounds):
		code = apperrors.CodeOutOfBounds
	case errors.Is(err, session.ErrGameNotFound):
		code = apperrors.CodeGameNotFound
	case errors.Is(err, session.ErrGameLimit):
		code = apperrors.CodeGameLimitReached
	case errors.Is(err, session.ErrNotWon):
		code = apperrors.CodeGameNotWon
	case errors.Is(err, session.ErrPlayerNameEmpty):
		code = apperrors.CodePlayerNameEmpty
	case errors.Is(err, session.ErrScoreRecorded), errors.Is(err, storage.ErrAlreadyExists):
		code = apperrors.CodeScoreAlreadyTaken
	case errors.Is(err, storage.ErrInvalidPageToken):
		code = apperrors.CodeInvalidPageToken
	case errors.Is(err, storage.ErrNotFound):
		code = apperrors.CodeNotFound
	}
	return apperrors.Wrap(code, err.Error(), err)
}

func toolError(p *message.Printer, err error) error {
	if err == nil {
		return nil
	}
	domainErr := classify(err)
	return &ToolError{text: apperrors.UserMessage(p, domainErr), err: domainErr}
}
