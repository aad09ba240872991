package bots

import (
	"fmt"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"chessbots/rules"
)

// StageResult is what a stage hands back to the chain: a final move, a
// narrowed candidate list for the next stage, or neither.
type StageResult struct {
	Move     string
	Narrowed []string
}

// Stage is one link of the priority filter chain. Moves arrive in enumerator
// order and must not be modified.
type Stage interface {
	Name() string
	Apply(ctx *Context, moves []string) (StageResult, error)
}

// Context carries the per-decision state shared by all stages.
type Context struct {
	Pos   rules.Position
	Legal []string
	Rand  *rand.Rand
	// Strict aborts the decision on the first candidate that fails to score
	// instead of skipping it.
	Strict bool
}

// Score evaluates moves in order. Failing candidates are skipped unless the
// context is strict.
func (c *Context) Score(e MoveEvaluator, moves []string) ([]Scored, error) {
	scored := make([]Scored, 0, len(moves))
	for _, m := range moves {
		s, err := e.Score(c.Pos, m)
		if err != nil {
			if c.Strict {
				return nil, fmt.Errorf("score %q: %w", m, err)
			}
			log.Debug().Err(err).Str("move", m).Msg("skipping candidate")
			continue
		}
		scored = append(scored, Scored{Move: m, Score: s})
	}
	return scored, nil
}

// MateInOne returns the first of the leading Depth moves that checkmates.
// Moves past Depth are never looked at.
type MateInOne struct {
	Depth int
}

func (MateInOne) Name() string { return "mate" }

func (s MateInOne) Apply(ctx *Context, moves []string) (StageResult, error) {
	n := min(s.Depth, len(moves))
	for _, m := range moves[:n] {
		after, err := ctx.Pos.Apply(m)
		if err != nil {
			return StageResult{}, err
		}
		if after.Status() == rules.Checkmate {
			return StageResult{Move: m}, nil
		}
	}
	return StageResult{}, nil
}

// CaptureResolution decides between several captures.
type CaptureResolution int

const (
	// CaptureFirst takes the first capture in enumerator order.
	CaptureFirst CaptureResolution = iota
	// CaptureBestScore takes the capture the evaluator scores highest.
	CaptureBestScore
	// CaptureMaterialGain takes the capture with the best captured minus
	// capturing piece value.
	CaptureMaterialGain
)

// Captures considers every move landing on an occupied square of the
// pre-move board. En passant lands on an empty square and is not a capture here.
type Captures struct {
	Resolve   CaptureResolution
	Evaluator MoveEvaluator
}

func (Captures) Name() string { return "capture" }

func (s Captures) Apply(ctx *Context, moves []string) (StageResult, error) {
	var captures []string
	for _, m := range moves {
		_, to, _, err := rules.SplitMove(m)
		if err != nil {
			return StageResult{}, err
		}
		if ctx.Pos.PieceAt(to) != chess.NoPiece {
			captures = append(captures, m)
		}
	}
	switch {
	case len(captures) == 0:
		return StageResult{}, nil
	case len(captures) == 1 || s.Resolve == CaptureFirst:
		return StageResult{Move: captures[0]}, nil
	}

	var scored []Scored
	if s.Resolve == CaptureMaterialGain {
		for _, m := range captures {
			from, to, _, _ := rules.SplitMove(m)
			gain := PieceValue(ctx.Pos.PieceAt(to).Type()) - PieceValue(ctx.Pos.PieceAt(from).Type())
			scored = append(scored, Scored{Move: m, Score: gain})
		}
	} else {
		var err error
		if scored, err = ctx.Score(s.Evaluator, captures); err != nil {
			return StageResult{}, err
		}
	}
	best, err := MaxScore{}.Select(scored, ctx.Rand)
	if err != nil {
		return StageResult{}, nil
	}
	return StageResult{Move: best.Move}, nil
}

// QueenPromotion returns the first move promoting to a queen.
type QueenPromotion struct{}

func (QueenPromotion) Name() string { return "promotion" }

func (QueenPromotion) Apply(_ *Context, moves []string) (StageResult, error) {
	for _, m := range moves {
		if len(m) == 5 && isQueenPromotion(m[4]) {
			return StageResult{Move: m}, nil
		}
	}
	return StageResult{}, nil
}

// Positional scores the candidates and lets the selector pick. Limit > 0
// restricts scoring to the first Limit candidates.
type Positional struct {
	Evaluator MoveEvaluator
	Selector  Selector
	Limit     int
}

func (Positional) Name() string { return "positional" }

func (s Positional) Apply(ctx *Context, moves []string) (StageResult, error) {
	if s.Limit > 0 && len(moves) > s.Limit {
		moves = moves[:s.Limit]
	}
	scored, err := ctx.Score(s.Evaluator, moves)
	if err != nil {
		return StageResult{}, err
	}
	if len(scored) == 0 {
		return StageResult{}, nil
	}
	choice, err := s.Selector.Select(scored, ctx.Rand)
	if err != nil {
		return StageResult{}, err
	}
	return StageResult{Move: choice.Move}, nil
}

// CenterOrOpenFile returns the first move that lands on a center square or
// puts a rook on a file without pawns. The file is checked before the move.
type CenterOrOpenFile struct{}

func (CenterOrOpenFile) Name() string { return "center" }

func (CenterOrOpenFile) Apply(ctx *Context, moves []string) (StageResult, error) {
	for _, m := range moves {
		from, to, _, err := rules.SplitMove(m)
		if err != nil {
			return StageResult{}, err
		}
		if IsCenter(to) {
			return StageResult{Move: m}, nil
		}
		if ctx.Pos.PieceAt(from).Type() == chess.Rook &&
			rules.CountPawns(ctx.Pos, to.File(), chess.NoColor) == 0 {
			return StageResult{Move: m}, nil
		}
	}
	return StageResult{}, nil
}

// MinorPieces narrows the candidates to knight and bishop moves.
type MinorPieces struct{}

func (MinorPieces) Name() string { return "minor" }

func (MinorPieces) Apply(ctx *Context, moves []string) (StageResult, error) {
	var minor []string
	for _, m := range moves {
		from, _, _, err := rules.SplitMove(m)
		if err != nil {
			return StageResult{}, err
		}
		switch ctx.Pos.PieceAt(from).Type() {
		case chess.Knight, chess.Bishop:
			minor = append(minor, m)
		}
	}
	return StageResult{Narrowed: minor}, nil
}

// UniformRandom picks uniformly among the candidates it receives.
type UniformRandom struct{}

func (UniformRandom) Name() string { return "random" }

func (UniformRandom) Apply(ctx *Context, moves []string) (StageResult, error) {
	if len(moves) == 0 {
		return StageResult{}, nil
	}
	return StageResult{Move: moves[ctx.Rand.Intn(len(moves))]}, nil
}
