package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Errors
	message.SetString(lang, "error.UNKNOWN", "an unexpected error occurred")
	message.SetString(lang, "error.INVALID_CONFIGURATION", "invalid board configuration")
	message.SetString(lang, "error.OUT_OF_BOUNDS", "cell is outside the board")
	message.SetString(lang, "error.GAME_NOT_FOUND", "game not found")
	message.SetString(lang, "error.GAME_NOT_WON", "only won games can record a score")
	message.SetString(lang, "error.GAME_LIMIT_REACHED", "too many games in progress, try again later")
	message.SetString(lang, "error.UNKNOWN_PRESET", "unknown board preset")
	message.SetString(lang, "error.PLAYER_NAME_EMPTY", "player name is required")
	message.SetString(lang, "error.SCORE_ALREADY_RECORDED", "score already recorded for this game")
	message.SetString(lang, "error.INVALID_FILTER", "invalid score filter")
	message.SetString(lang, "error.INVALID_PAGE_TOKEN", "invalid page token")
	message.SetString(lang, "error.NOT_FOUND", "record not found")

	// Game status
	message.SetString(lang, "status.ONGOING", "in progress")
	message.SetString(lang, "status.WON", "won")
	message.SetString(lang, "status.LOST", "lost")

	// Game summaries
	message.SetString(lang, "game.created", "Started a %dx%d game with %d mines (id %s).")
	message.SetString(lang, "game.summary", "Game %s is %s: %d mines left to flag, %d seconds elapsed.")
	message.SetString(lang, "game.won", "Board cleared in %d seconds.")
	message.SetString(lang, "game.lost", "A mine went off.")
	message.SetString(lang, "game.reset", "Game %s was reset.")
	message.SetString(lang, "game.ended", "Game %s ended.")

	// Scores
	message.SetString(lang, "score.recorded", "Recorded %d seconds for %s.")
	message.SetString(lang, "scores.listed", "%d scores listed.")
	message.SetString(lang, "scores.cleared", "%d scores cleared.")
}
