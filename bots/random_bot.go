package bots

import (
	"time"

	"golang.org/x/exp/rand"

	"chessbots/rules"
)

// RandomBot plays a uniformly random legal move.
type RandomBot struct {
	engine rules.Engine
	rand   *rand.Rand
}

func NewRandomBot(options ...Option) *RandomBot {
	s := settings{engine: rules.NotnilEngine{}}
	for _, option := range options {
		option(&s)
	}
	if s.rand == nil {
		s.rand = newRand(uint64(time.Now().UnixNano()))
	}
	return &RandomBot{engine: s.engine, rand: s.rand}
}

func (b *RandomBot) BestMove(obs Observation) string {
	pos, err := b.engine.Parse(obs.Board)
	if err != nil {
		return ""
	}
	moves, err := pos.LegalMoves()
	if err == nil && len(moves) > 0 {
		return moves[b.rand.Intn(len(moves))]
	}
	return ""
}

func (b *RandomBot) Name() string {
	return "random"
}
