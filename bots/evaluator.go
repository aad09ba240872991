package bots

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"chessbots/rules"
)

// Term is one independent component of a move score.
type Term uint

const (
	TermMate Term = 1 << iota
	TermMaterial
	TermPromotion
	TermCenter
	TermOpenFile
	TermPawnStructure
	TermPieceSquare
)

const (
	PromotionBonus      = 800
	CenterBonus         = 30
	OpenFileBonus       = 50
	DoubledPawnPenalty  = 30
	IsolatedPawnPenalty = 20
)

const (
	HybridTerms     = TermMaterial | TermPromotion | TermCenter | TermOpenFile
	NaiveTerms      = TermMate | TermMaterial | TermPromotion | TermPieceSquare
	PositionalTerms = TermMate | TermMaterial | TermPromotion | TermCenter | TermOpenFile | TermPawnStructure
)

var termNames = []struct {
	term Term
	name string
}{
	{TermMate, "mate"},
	{TermMaterial, "material"},
	{TermPromotion, "promotion"},
	{TermCenter, "center"},
	{TermOpenFile, "open_file"},
	{TermPawnStructure, "pawn_structure"},
	{TermPieceSquare, "piece_square"},
}

func (t Term) String() string {
	var names []string
	for _, tn := range termNames {
		if t&tn.term != 0 {
			names = append(names, tn.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseTerms parses term names as written by Term.String, in any order.
func ParseTerms(names []string) (Term, error) {
	var t Term
next:
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		for _, tn := range termNames {
			if tn.name == name {
				t |= tn.term
				continue next
			}
		}
		return 0, fmt.Errorf("unknown score term %q", name)
	}
	return t, nil
}

// MoveEvaluator scores a single candidate move by simulating it on a copy of
// the position. It never looks deeper than one ply.
type MoveEvaluator struct {
	Terms Term
}

func (e MoveEvaluator) Score(pos rules.Position, move string) (int, error) {
	from, to, promo, err := rules.SplitMove(move)
	if err != nil {
		return 0, err
	}
	mover := pos.PieceAt(from)
	if mover == chess.NoPiece {
		return 0, fmt.Errorf("%w: %q: no piece on %s", rules.ErrIllegalMove, move, from)
	}
	after, err := pos.Apply(move)
	if err != nil {
		return 0, err
	}

	if e.Terms&TermMate != 0 && after.Status() == rules.Checkmate {
		return MateScore, nil
	}

	score := 0
	if e.Terms&TermMaterial != 0 {
		if captured := pos.PieceAt(to); captured != chess.NoPiece {
			score += PieceValue(captured.Type())
		}
	}
	if e.Terms&TermPromotion != 0 && isQueenPromotion(promo) {
		score += PromotionBonus
	}
	if e.Terms&TermCenter != 0 && IsCenter(to) {
		score += CenterBonus
	}
	if e.Terms&TermOpenFile != 0 && mover.Type() == chess.Rook &&
		rules.CountPawns(after, to.File(), chess.NoColor) == 0 {
		score += OpenFileBonus
	}
	if e.Terms&TermPawnStructure != 0 {
		score -= pawnStructurePenalty(after, to.File(), mover.Color())
	}
	if e.Terms&TermPieceSquare != 0 {
		delta := Material(after) - Material(pos)
		if mover.Color() == chess.Black {
			delta = -delta
		}
		score += delta
	}
	return score, nil
}

func pawnStructurePenalty(pos rules.Position, file chess.File, c chess.Color) int {
	penalty := 0
	if rules.CountPawns(pos, file, c) > 1 {
		penalty += DoubledPawnPenalty
	}
	neighbours := 0
	if file > chess.FileA {
		neighbours += rules.CountPawns(pos, file-1, c)
	}
	if file < chess.FileH {
		neighbours += rules.CountPawns(pos, file+1, c)
	}
	if neighbours == 0 {
		penalty += IsolatedPawnPenalty
	}
	return penalty
}

func isQueenPromotion(promo byte) bool {
	return promo == 'q' || promo == 'Q'
}
