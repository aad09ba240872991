package bots

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"chessbots/rules"
)

var ErrNoLegalMoves = errors.New("no legal moves")

// OpeningMove is the fixed fallback some bots return when even the
// degraded path cannot produce a move.
const OpeningMove = "e2e4"

// DefaultMateCheckDepth bounds the mate-in-one scan to the first moves of
// the enumerator's list.
const DefaultMateCheckDepth = 10

const DefaultTopK = 3

// Mode tells whether a decision went through the normal chain.
type Mode int

const (
	Normal Mode = iota
	Degraded
)

func (m Mode) String() string {
	if m == Degraded {
		return "degraded"
	}
	return "normal"
}

// Fallback is the sentinel returned when no legal move can be recovered.
type Fallback int

const (
	FallbackNoMove Fallback = iota
	FallbackOpeningMove
)

func (f Fallback) Sentinel() string {
	if f == FallbackOpeningMove {
		return OpeningMove
	}
	return ""
}

// Decision is the result of one call. Err holds the failure absorbed on the
// way, if any; the call itself never fails.
type Decision struct {
	Move  string
	Mode  Mode
	Stage string
	Err   error
}

type settings struct {
	engine     rules.Engine
	mateDepth  int
	selector   Selector
	terms      Term
	scoreLimit int
	fallback   Fallback
	strict     bool
	rand       *rand.Rand
}

type Option func(s *settings)

func WithEngine(engine rules.Engine) Option {
	return func(s *settings) {
		if engine != nil {
			s.engine = engine
		}
	}
}

func WithMateCheckDepth(depth int) Option {
	return func(s *settings) {
		if depth > 0 {
			s.mateDepth = depth
		}
	}
}

func WithSelector(selector Selector) Option {
	return func(s *settings) {
		if selector != nil {
			s.selector = selector
		}
	}
}

func WithTerms(terms Term) Option {
	return func(s *settings) {
		if terms != 0 {
			s.terms = terms
		}
	}
}

// WithScoreLimit makes the positional stage score only the first n moves.
func WithScoreLimit(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.scoreLimit = n
		}
	}
}

func WithFallback(f Fallback) Option {
	return func(s *settings) {
		s.fallback = f
	}
}

// WithStrictScoring makes a single failing candidate abort the whole
// decision into the degraded path.
func WithStrictScoring(strict bool) Option {
	return func(s *settings) {
		s.strict = strict
	}
}

func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.rand = newRand(seed)
	}
}

func WithRand(r *rand.Rand) Option {
	return func(s *settings) {
		if r != nil {
			s.rand = r
		}
	}
}

func newRand(seed uint64) *rand.Rand {
	src := &rand.LockedSource{}
	src.Seed(seed)
	return rand.New(src)
}

// Pipeline runs the priority filter chain for one bot configuration. It is
// safe for concurrent use.
type Pipeline struct {
	name     string
	engine   rules.Engine
	stages   []Stage
	fallback Fallback
	strict   bool
	rand     *rand.Rand
}

func newPipeline(name string, s settings, options []Option, build func(s settings) []Stage) *Pipeline {
	if s.engine == nil {
		s.engine = rules.NotnilEngine{}
	}
	for _, option := range options {
		option(&s)
	}
	if s.rand == nil {
		s.rand = newRand(uint64(time.Now().UnixNano()))
	}
	return &Pipeline{
		name:     name,
		engine:   s.engine,
		stages:   build(s),
		fallback: s.fallback,
		strict:   s.strict,
		rand:     s.rand,
	}
}

// NewPipeline assembles a bot from explicit stages.
func NewPipeline(name string, stages []Stage, options ...Option) *Pipeline {
	return newPipeline(name, settings{}, options, func(settings) []Stage { return stages })
}

func (p *Pipeline) Name() string { return p.name }

func (p *Pipeline) Stages() []Stage { return p.stages }

func (p *Pipeline) BestMove(obs Observation) string {
	return p.Decide(obs).Move
}

// Decide picks a move for obs. A position without legal moves yields an
// empty move in normal mode; any other failure switches to degraded mode.
func (p *Pipeline) Decide(obs Observation) (d Decision) {
	defer func() {
		if r := recover(); r != nil {
			d = p.degrade(obs, fmt.Errorf("panic: %v", r))
		}
	}()

	move, stage, err := p.run(obs)
	switch {
	case errors.Is(err, ErrNoLegalMoves):
		log.Debug().Str("bot", p.name).Msg("no legal moves")
		return Decision{Mode: Normal, Stage: stage, Err: err}
	case err != nil:
		return p.degrade(obs, err)
	}
	log.Debug().Str("bot", p.name).Str("stage", stage).Str("move", move).Msg("move selected")
	return Decision{Move: move, Mode: Normal, Stage: stage}
}

func (p *Pipeline) run(obs Observation) (string, string, error) {
	pos, err := p.engine.Parse(obs.Board)
	if err != nil {
		return "", "parse", err
	}
	legal, err := pos.LegalMoves()
	if err != nil {
		return "", "enumerate", err
	}
	if len(legal) == 0 {
		return "", "enumerate", ErrNoLegalMoves
	}

	ctx := &Context{Pos: pos, Legal: legal, Rand: p.rand, Strict: p.strict}
	moves := legal
	for _, stage := range p.stages {
		res, err := stage.Apply(ctx, moves)
		if err != nil {
			return "", stage.Name(), fmt.Errorf("%s stage: %w", stage.Name(), err)
		}
		if res.Move != "" {
			return res.Move, stage.Name(), nil
		}
		if len(res.Narrowed) > 0 {
			moves = res.Narrowed
		} else {
			moves = legal
		}
	}
	return legal[p.rand.Intn(len(legal))], "exhausted", nil
}

// degrade re-enumerates the observed position and returns a uniformly
// random legal move, or the configured sentinel when that fails as well.
func (p *Pipeline) degrade(obs Observation, cause error) Decision {
	log.Warn().Err(cause).Str("bot", p.name).Msg("decision degraded")

	pos, err := p.engine.Parse(obs.Board)
	if err == nil {
		var legal []string
		if legal, err = pos.LegalMoves(); err == nil {
			if len(legal) == 0 {
				return Decision{Mode: Degraded, Stage: "recover", Err: cause}
			}
			return Decision{Move: legal[p.rand.Intn(len(legal))], Mode: Degraded, Stage: "recover", Err: cause}
		}
	}
	return Decision{Move: p.fallback.Sentinel(), Mode: Degraded, Stage: "sentinel", Err: errors.Join(cause, err)}
}
