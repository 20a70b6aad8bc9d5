// Package domain maps MCP tools and resources onto minefield games and the
// score store.
//
// Handlers resolve a live game through the session manager, apply the move,
// project the board into a BoardView and attach a localized one-line summary
// to every result. Errors leave this package as coded, translated messages.
package domain
