package rules

import (
	"fmt"

	"github.com/notnil/chess"
)

// SquareIndex converts a square name such as "e4" to its index (a1 = 0, h8 = 63).
func SquareIndex(name string) (chess.Square, error) {
	if len(name) != 2 {
		return chess.NoSquare, fmt.Errorf("square %q: want two characters", name)
	}
	file, rank := int(name[0]-'a'), int(name[1]-'1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return chess.NoSquare, fmt.Errorf("square %q: out of range", name)
	}
	return chess.NewSquare(chess.File(file), chess.Rank(rank)), nil
}

// SplitMove returns the source and destination squares and the promotion
// letter (0 when absent) of a coordinate move.
func SplitMove(move string) (from, to chess.Square, promo byte, err error) {
	if len(move) != 4 && len(move) != 5 {
		return chess.NoSquare, chess.NoSquare, 0, fmt.Errorf("%w: %q", ErrIllegalMove, move)
	}
	if from, err = SquareIndex(move[0:2]); err != nil {
		return chess.NoSquare, chess.NoSquare, 0, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	if to, err = SquareIndex(move[2:4]); err != nil {
		return chess.NoSquare, chess.NoSquare, 0, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	if len(move) == 5 {
		promo = move[4]
	}
	return from, to, promo, nil
}

// CountPawns counts pawns of color c on file f. chess.NoColor counts both sides.
func CountPawns(pos Position, f chess.File, c chess.Color) int {
	n := 0
	for r := chess.Rank1; r <= chess.Rank8; r++ {
		p := pos.PieceAt(chess.NewSquare(f, r))
		if p.Type() != chess.Pawn {
			continue
		}
		if c == chess.NoColor || p.Color() == c {
			n++
		}
	}
	return n
}
