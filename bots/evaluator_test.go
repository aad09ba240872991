package bots

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/require"

	"chessbots/rules"
)

const (
	startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	// g5f7 is a smothered mate; White has nine legal moves.
	smotheredFEN = "6rk/6pp/8/6N1/8/8/8/7K w - - 0 1"
	// The rook on d1 can take a queen on d5 or a knight on a1.
	twoCapturesFEN = "4k3/8/8/3q4/8/8/7K/n2R4 w - - 0 1"
	promotionFEN   = "4k3/1P6/8/8/8/8/8/4K3 w - - 0 1"
	foolsMateFEN   = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	stalemateFEN   = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
)

func mustParse(t *testing.T, fen string) rules.Position {
	t.Helper()
	pos, err := rules.NotnilEngine{}.Parse(fen)
	require.NoError(t, err)
	return pos
}

func score(t *testing.T, terms Term, fen, move string) int {
	t.Helper()
	s, err := MoveEvaluator{Terms: terms}.Score(mustParse(t, fen), move)
	require.NoError(t, err)
	return s
}

func TestMoveEvaluator(t *testing.T) {
	t.Run("mate dominates", func(t *testing.T) {
		require.Equal(t, MateScore, score(t, TermMate|TermMaterial, smotheredFEN, "g5f7"))
		require.Equal(t, 0, score(t, TermMaterial, smotheredFEN, "g5f7"),
			"Without the mate term a quiet mate scores nothing")
	})

	t.Run("material counts the captured piece", func(t *testing.T) {
		require.Equal(t, 900, score(t, TermMaterial, twoCapturesFEN, "d1d5"))
		require.Equal(t, 320, score(t, TermMaterial, twoCapturesFEN, "d1a1"))
		require.Equal(t, 0, score(t, TermMaterial, twoCapturesFEN, "d1d2"))
	})

	t.Run("queen promotion only", func(t *testing.T) {
		require.Equal(t, PromotionBonus, score(t, TermPromotion, promotionFEN, "b7b8q"))
		require.Equal(t, 0, score(t, TermPromotion, promotionFEN, "b7b8r"))
	})

	t.Run("center squares", func(t *testing.T) {
		require.Equal(t, CenterBonus, score(t, TermCenter, startFEN, "e2e4"))
		require.Equal(t, CenterBonus, score(t, TermCenter, startFEN, "d2d4"))
		require.Equal(t, 0, score(t, TermCenter, startFEN, "e2e3"))
	})

	t.Run("rook on a file without pawns", func(t *testing.T) {
		const empty = "4k3/8/8/8/8/8/8/R3K3 w - - 0 1"
		const blocked = "4k3/p7/8/8/8/8/8/R3K3 w - - 0 1"
		require.Equal(t, OpenFileBonus, score(t, TermOpenFile, empty, "a1a5"))
		require.Equal(t, 0, score(t, TermOpenFile, blocked, "a1a5"))
		require.Equal(t, OpenFileBonus, score(t, TermOpenFile, blocked, "a1b1"))
		require.Equal(t, 0, score(t, TermOpenFile, empty, "e1e2"), "Only rooks earn the bonus")
	})

	t.Run("pawn structure penalties", func(t *testing.T) {
		const isolated = "4k3/8/8/8/8/8/3P1P2/4K3 w - - 0 1"
		const doubled = "4k3/8/8/8/8/4P3/3PP3/4K3 w - - 0 1"
		require.Equal(t, -IsolatedPawnPenalty, score(t, TermPawnStructure, isolated, "d2d3"))
		require.Equal(t, -DoubledPawnPenalty, score(t, TermPawnStructure, doubled, "e3e4"))
		require.Equal(t, 0, score(t, TermPawnStructure, doubled, "d2d4"))
		require.Equal(t, -IsolatedPawnPenalty, score(t, TermPawnStructure, promotionFEN, "b7b8q"))
	})

	t.Run("pawn structure applies to every move", func(t *testing.T) {
		// The knight lands on the g-file with no white pawns beside it.
		const knight = "4k3/8/8/8/8/2P5/2P5/3K3N w - - 0 1"
		require.Equal(t, -IsolatedPawnPenalty, score(t, TermPawnStructure, knight, "h1g3"))
		require.Equal(t, 0, score(t, TermPawnStructure, knight, "d1d2"), "The d-file has the c pawns beside it")
	})

	t.Run("piece square delta is symmetric", func(t *testing.T) {
		require.Equal(t, 40, score(t, TermPieceSquare, startFEN, "e2e4"))
		require.Equal(t, 50, score(t, TermPieceSquare, startFEN, "g1f3"))

		const afterE4 = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1"
		require.Equal(t, 40, score(t, TermPieceSquare, afterE4, "e7e5"))
		require.Equal(t, 50, score(t, TermPieceSquare, afterE4, "g8f6"))
	})

	t.Run("terms add up", func(t *testing.T) {
		// Material 900, center 30, the d-file has no pawns after the capture.
		require.Equal(t, 980, score(t, HybridTerms, twoCapturesFEN, "d1d5"))
	})

	t.Run("illegal moves fail", func(t *testing.T) {
		pos := mustParse(t, startFEN)
		_, err := MoveEvaluator{Terms: NaiveTerms}.Score(pos, "e2e5")
		require.ErrorIs(t, err, rules.ErrIllegalMove)
		_, err = MoveEvaluator{Terms: NaiveTerms}.Score(pos, "e4e5")
		require.ErrorIs(t, err, rules.ErrIllegalMove)
		_, err = MoveEvaluator{Terms: NaiveTerms}.Score(pos, "zz")
		require.ErrorIs(t, err, rules.ErrIllegalMove)
	})

	t.Run("position is not modified", func(t *testing.T) {
		pos := mustParse(t, startFEN)
		_, err := MoveEvaluator{Terms: NaiveTerms}.Score(pos, "e2e4")
		require.NoError(t, err)
		require.Equal(t, chess.WhitePawn, pos.PieceAt(chess.E2))
		require.Equal(t, chess.White, pos.Turn())
	})
}

func TestTerms(t *testing.T) {
	t.Run("round trip through names", func(t *testing.T) {
		got, err := ParseTerms([]string{"mate", " Material ", "piece_square", "promotion"})
		require.NoError(t, err)
		require.Equal(t, NaiveTerms, got)
		require.Equal(t, "mate|material|promotion|piece_square", NaiveTerms.String())
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ParseTerms([]string{"mobility"})
		require.Error(t, err)
	})
}

func TestMaterial(t *testing.T) {
	t.Run("start position is balanced", func(t *testing.T) {
		require.Equal(t, 0, Material(mustParse(t, startFEN)))
	})

	t.Run("square bonus mirrors for black", func(t *testing.T) {
		require.Equal(t, -SquareBonus(chess.WhiteKnight, chess.F3), SquareBonus(chess.BlackKnight, chess.F6))
		require.Equal(t, -SquareBonus(chess.WhitePawn, chess.E4), SquareBonus(chess.BlackPawn, chess.E5))
		require.Equal(t, 0, SquareBonus(chess.WhiteQueen, chess.D1))
	})
}
