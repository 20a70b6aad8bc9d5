package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.MustParse("pt-BR")

	// Errors
	message.SetString(lang, "error.UNKNOWN", "ocorreu um erro inesperado")
	message.SetString(lang, "error.INVALID_CONFIGURATION", "configuração de tabuleiro inválida")
	message.SetString(lang, "error.OUT_OF_BOUNDS", "a célula está fora do tabuleiro")
	message.SetString(lang, "error.GAME_NOT_FOUND", "jogo não encontrado")
	message.SetString(lang, "error.GAME_NOT_WON", "apenas jogos vencidos podem registrar pontuação")
	message.SetString(lang, "error.GAME_LIMIT_REACHED", "há jogos demais em andamento, tente novamente mais tarde")
	message.SetString(lang, "error.UNKNOWN_PRESET", "predefinição de tabuleiro desconhecida")
	message.SetString(lang, "error.PLAYER_NAME_EMPTY", "o nome do jogador é obrigatório")
	message.SetString(lang, "error.SCORE_ALREADY_RECORDED", "a pontuação deste jogo já foi registrada")
	message.SetString(lang, "error.INVALID_FILTER", "filtro de pontuação inválido")
	message.SetString(lang, "error.INVALID_PAGE_TOKEN", "token de página inválido")
	message.SetString(lang, "error.NOT_FOUND", "registro não encontrado")

	// Game status
	message.SetString(lang, "status.ONGOING", "em andamento")
	message.SetString(lang, "status.WON", "vencido")
	message.SetString(lang, "status.LOST", "perdido")

	// Game summaries
	message.SetString(lang, "game.created", "Jogo %dx%d iniciado com %d minas (id %s).")
	message.SetString(lang, "game.summary", "O jogo %s está %s: %d minas a marcar, %d segundos decorridos.")
	message.SetString(lang, "game.won", "Tabuleiro limpo em %d segundos.")
	message.SetString(lang, "game.lost", "Uma mina explodiu.")
	message.SetString(lang, "game.reset", "O jogo %s foi reiniciado.")
	message.SetString(lang, "game.ended", "O jogo %s foi encerrado.")

	// Scores
	message.SetString(lang, "score.recorded", "%d segundos registrados para %s.")
	message.SetString(lang, "scores.listed", "%d pontuações listadas.")
	message.SetString(lang, "scores.cleared", "%d pontuações removidas.")
}
