// Package errors provides structured error handling for the minefield service.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Board errors
	CodeInvalidConfiguration Code = "INVALID_CONFIGURATION"
	CodeOutOfBounds          Code = "OUT_OF_BOUNDS"

	// Game session errors
	CodeGameNotFound      Code = "GAME_NOT_FOUND"
	CodeGameNotWon        Code = "GAME_NOT_WON"
	CodeGameLimitReached  Code = "GAME_LIMIT_REACHED"
	CodeUnknownPreset     Code = "UNKNOWN_PRESET"
	CodePlayerNameEmpty   Code = "PLAYER_NAME_EMPTY"
	CodeScoreAlreadyTaken Code = "SCORE_ALREADY_RECORDED"

	// Score listing errors
	CodeInvalidFilter    Code = "INVALID_FILTER"
	CodeInvalidPageToken Code = "INVALID_PAGE_TOKEN"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// Retryable reports whether a caller could succeed by repeating the request
// unchanged later.
func (c Code) Retryable() bool {
	switch c {
	case CodeGameLimitReached:
		return true
	default:
		return false
	}
}
