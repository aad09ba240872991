// bot.go
package bots

// Observation is the input of a decision: the current position as FEN.
type Observation struct {
	Board string `json:"board"`
}

// ChessBot интерфейс для всех ботов
type ChessBot interface {
	// BestMove returns a move in coordinate notation ("e2e4", "e7e8q"),
	// or the bot's configured sentinel when no move can be produced.
	BestMove(obs Observation) string
	Name() string
}
