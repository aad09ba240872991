package bots

import (
	"github.com/notnil/chess"

	"chessbots/rules"
)

// MateScore dominates every other term of a move score.
const MateScore = 100000

var pieceValues = map[chess.PieceType]int{
	chess.Pawn:   100,
	chess.Knight: 320,
	chess.Bishop: 330,
	chess.Rook:   500,
	chess.Queen:  900,
	chess.King:   20000,
}

// PieceValue returns the material value of a piece type; 0 for NoPieceType.
func PieceValue(t chess.PieceType) int {
	return pieceValues[t]
}

// Square bonus tables from White's point of view, written rank 8 first.
var pawnTable = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightTable = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var squareTables = map[chess.PieceType]*[64]int{
	chess.Pawn:   &pawnTable,
	chess.Knight: &knightTable,
}

// SquareBonus returns the table bonus of piece p on sq, signed from White's
// point of view. Black reads the table mirrored across the board's middle.
func SquareBonus(p chess.Piece, sq chess.Square) int {
	table, ok := squareTables[p.Type()]
	if !ok {
		return 0
	}
	file, rank := int(sq.File()), int(sq.Rank())
	if p.Color() == chess.White {
		return table[(7-rank)*8+file]
	}
	return -table[rank*8+file]
}

// Material sums material and square bonuses over the board, from White's
// point of view.
func Material(pos rules.Position) int {
	score := 0
	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := pos.PieceAt(sq)
		if p == chess.NoPiece {
			continue
		}
		value := PieceValue(p.Type())
		if p.Color() == chess.Black {
			value = -value
		}
		score += value + SquareBonus(p, sq)
	}
	return score
}

var centerSquares = map[chess.Square]bool{
	chess.D4: true,
	chess.E4: true,
	chess.D5: true,
	chess.E5: true,
}

// IsCenter reports whether sq is one of d4, e4, d5, e5.
func IsCenter(sq chess.Square) bool {
	return centerSquares[sq]
}
