package bots

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownBot = errors.New("unknown bot")

// NewBasicBot: mate in one, first capture, queen promotion, random move.
// It falls back to OpeningMove and aborts on the first scoring failure.
func NewBasicBot(options ...Option) *Pipeline {
	s := settings{
		mateDepth: DefaultMateCheckDepth,
		fallback:  FallbackOpeningMove,
		strict:    true,
	}
	return newPipeline("basic", s, options, func(s settings) []Stage {
		return []Stage{
			MateInOne{Depth: s.mateDepth},
			Captures{Resolve: CaptureFirst},
			QueenPromotion{},
			UniformRandom{},
		}
	})
}

// NewHybridBot ranks several captures with the evaluator and picks among the
// three best quiet moves uniformly.
func NewHybridBot(options ...Option) *Pipeline {
	s := settings{
		mateDepth: DefaultMateCheckDepth,
		selector:  UniformTopK{K: DefaultTopK},
		terms:     HybridTerms,
		fallback:  FallbackNoMove,
	}
	return newPipeline("hybrid", s, options, func(s settings) []Stage {
		eval := MoveEvaluator{Terms: s.terms}
		return []Stage{
			MateInOne{Depth: s.mateDepth},
			Captures{Resolve: CaptureBestScore, Evaluator: eval},
			QueenPromotion{},
			Positional{Evaluator: eval, Selector: s.selector, Limit: s.scoreLimit},
			UniformRandom{},
		}
	})
}

// NewNaiveBot skips the filter chain: every legal move is scored, mate
// included, and one of the top three is drawn by weight.
func NewNaiveBot(options ...Option) *Pipeline {
	s := settings{
		selector: WeightedTopK{K: DefaultTopK},
		terms:    NaiveTerms,
		fallback: FallbackNoMove,
	}
	return newPipeline("naive", s, options, func(s settings) []Stage {
		return []Stage{
			Positional{Evaluator: MoveEvaluator{Terms: s.terms}, Selector: s.selector, Limit: s.scoreLimit},
			UniformRandom{},
		}
	})
}

// NewPositionalBot is the hybrid chain with pawn-structure terms and a
// weighted draw over the top three.
func NewPositionalBot(options ...Option) *Pipeline {
	s := settings{
		mateDepth: DefaultMateCheckDepth,
		selector:  WeightedTopK{K: DefaultTopK},
		terms:     PositionalTerms,
		fallback:  FallbackNoMove,
	}
	return newPipeline("positional", s, options, func(s settings) []Stage {
		eval := MoveEvaluator{Terms: s.terms}
		return []Stage{
			MateInOne{Depth: s.mateDepth},
			Captures{Resolve: CaptureBestScore, Evaluator: eval},
			QueenPromotion{},
			Positional{Evaluator: eval, Selector: s.selector, Limit: s.scoreLimit},
			UniformRandom{},
		}
	})
}

// NewCenterBot plays the lightweight heuristics: captures by material gain,
// center squares and open files, then knight and bishop moves.
func NewCenterBot(options ...Option) *Pipeline {
	s := settings{
		mateDepth: DefaultMateCheckDepth,
		fallback:  FallbackNoMove,
	}
	return newPipeline("center", s, options, func(s settings) []Stage {
		return []Stage{
			MateInOne{Depth: s.mateDepth},
			Captures{Resolve: CaptureMaterialGain},
			QueenPromotion{},
			CenterOrOpenFile{},
			MinorPieces{},
			UniformRandom{},
		}
	})
}

var registry = map[string]func(options ...Option) ChessBot{
	"basic":      func(o ...Option) ChessBot { return NewBasicBot(o...) },
	"hybrid":     func(o ...Option) ChessBot { return NewHybridBot(o...) },
	"naive":      func(o ...Option) ChessBot { return NewNaiveBot(o...) },
	"positional": func(o ...Option) ChessBot { return NewPositionalBot(o...) },
	"center":     func(o ...Option) ChessBot { return NewCenterBot(o...) },
	"newborn":    func(o ...Option) ChessBot { return NewNewbornBot(o...) },
	"random":     func(o ...Option) ChessBot { return NewRandomBot(o...) },
}

// New builds the bot registered under name.
func New(name string, options ...Option) (ChessBot, error) {
	build, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownBot, name, strings.Join(Names(), ", "))
	}
	return build(options...), nil
}

// Names lists the registered bots in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
