package bots

import "chessbots/rules"

// NewbornBot always plays the first legal move in enumerator order.
type NewbornBot struct {
	engine rules.Engine
}

func NewNewbornBot(options ...Option) *NewbornBot {
	s := settings{engine: rules.NotnilEngine{}}
	for _, option := range options {
		option(&s)
	}
	return &NewbornBot{engine: s.engine}
}

func (b *NewbornBot) BestMove(obs Observation) string {
	pos, err := b.engine.Parse(obs.Board)
	if err != nil {
		return ""
	}
	moves, err := pos.LegalMoves()
	if err == nil && len(moves) > 0 {
		return moves[0]
	}
	return ""
}

func (b *NewbornBot) Name() string {
	return "newborn"
}
