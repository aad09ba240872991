package rules

import (
	"sort"
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/require"
)

const (
	startFEN     = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	foolsMateFEN = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	stalemateFEN = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	inCheckFEN   = "4k3/8/8/8/8/8/8/4R1K1 b - - 0 1"
	// Castling on both sides, pins and captures for White.
	kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
)

func engines() []Engine {
	return []Engine{NotnilEngine{}, DragontoothEngine{}}
}

func TestNew(t *testing.T) {
	t.Run("empty name selects notnil", func(t *testing.T) {
		e, err := New("")
		require.NoError(t, err)
		require.Equal(t, "notnil", e.Name())
	})

	t.Run("dragontooth by name", func(t *testing.T) {
		e, err := New("Dragontooth")
		require.NoError(t, err)
		require.Equal(t, "dragontooth", e.Name())
	})

	t.Run("unknown engine", func(t *testing.T) {
		_, err := New("stockfish")
		require.ErrorIs(t, err, ErrUnknown)
	})
}

func TestLegalMoves(t *testing.T) {
	for _, e := range engines() {
		t.Run(e.Name()+" start position has twenty moves", func(t *testing.T) {
			pos, err := e.Parse(startFEN)
			require.NoError(t, err)

			moves, err := pos.LegalMoves()
			require.NoError(t, err)
			require.Len(t, moves, 20)
			require.Contains(t, moves, "e2e4")
			require.Contains(t, moves, "g1f3")
		})

		t.Run(e.Name()+" checkmated side has no moves", func(t *testing.T) {
			pos, err := e.Parse(foolsMateFEN)
			require.NoError(t, err)

			moves, err := pos.LegalMoves()
			require.NoError(t, err)
			require.Empty(t, moves)
		})
	}

	t.Run("engines agree on move sets", func(t *testing.T) {
		for _, fen := range []string{startFEN, kiwipeteFEN, inCheckFEN} {
			var sets [][]string
			for _, e := range engines() {
				pos, err := e.Parse(fen)
				require.NoError(t, err)
				moves, err := pos.LegalMoves()
				require.NoError(t, err)
				sort.Strings(moves)
				sets = append(sets, moves)
			}
			require.Equal(t, sets[0], sets[1], "move sets differ for %s", fen)
		}
	})
}

func TestApply(t *testing.T) {
	for _, e := range engines() {
		t.Run(e.Name()+" does not mutate the receiver", func(t *testing.T) {
			pos, err := e.Parse(startFEN)
			require.NoError(t, err)

			after, err := pos.Apply("e2e4")
			require.NoError(t, err)

			require.Equal(t, chess.WhitePawn, pos.PieceAt(chess.E2))
			require.Equal(t, chess.NoPiece, pos.PieceAt(chess.E4))
			require.Equal(t, chess.White, pos.Turn())

			require.Equal(t, chess.NoPiece, after.PieceAt(chess.E2))
			require.Equal(t, chess.WhitePawn, after.PieceAt(chess.E4))
			require.Equal(t, chess.Black, after.Turn())

			moves, err := pos.LegalMoves()
			require.NoError(t, err)
			require.Len(t, moves, 20)
		})

		t.Run(e.Name()+" rejects illegal moves", func(t *testing.T) {
			pos, err := e.Parse(startFEN)
			require.NoError(t, err)

			_, err = pos.Apply("e2e5")
			require.ErrorIs(t, err, ErrIllegalMove)
		})

		t.Run(e.Name()+" castles in coordinate notation", func(t *testing.T) {
			pos, err := e.Parse(kiwipeteFEN)
			require.NoError(t, err)

			after, err := pos.Apply("e1g1")
			require.NoError(t, err)
			require.Equal(t, chess.WhiteKing, after.PieceAt(chess.G1))
			require.Equal(t, chess.WhiteRook, after.PieceAt(chess.F1))
		})
	}
}

func TestStatus(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		want Status
	}{
		{"ongoing", startFEN, Ongoing},
		{"check", inCheckFEN, Check},
		{"checkmate", foolsMateFEN, Checkmate},
		{"stalemate", stalemateFEN, Stalemate},
	}
	for _, e := range engines() {
		for _, c := range cases {
			t.Run(e.Name()+" "+c.name, func(t *testing.T) {
				pos, err := e.Parse(c.fen)
				require.NoError(t, err)
				require.Equal(t, c.want, pos.Status())
			})
		}
	}

	for _, e := range engines() {
		t.Run(e.Name()+" check after a move", func(t *testing.T) {
			pos, err := e.Parse("4k3/8/8/8/8/8/8/R5K1 w - - 0 1")
			require.NoError(t, err)

			after, err := pos.Apply("a1e1")
			require.NoError(t, err)
			require.Equal(t, Check, after.Status())
			require.Equal(t, Ongoing, pos.Status())

			quiet, err := pos.Apply("a1a2")
			require.NoError(t, err)
			require.Equal(t, Ongoing, quiet.Status())
		})

		t.Run(e.Name()+" mate after a move", func(t *testing.T) {
			pos, err := e.Parse("rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2")
			require.NoError(t, err)

			after, err := pos.Apply("d8h4")
			require.NoError(t, err)
			require.Equal(t, Checkmate, after.Status())
		})
	}
}

func TestParseInvalid(t *testing.T) {
	bad := []string{
		"",
		"not a fen",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
	}
	for _, e := range engines() {
		for _, fen := range bad {
			_, err := e.Parse(fen)
			require.ErrorIs(t, err, ErrInvalidFEN, "%s accepted %q", e.Name(), fen)
		}
	}

	t.Run("dragontooth requires both kings", func(t *testing.T) {
		_, err := DragontoothEngine{}.Parse("8/8/8/8/8/8/8/4K3 w - - 0 1")
		require.ErrorIs(t, err, ErrInvalidFEN)
	})

	t.Run("dragontooth checks rank width", func(t *testing.T) {
		_, err := DragontoothEngine{}.Parse("rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
		require.ErrorIs(t, err, ErrInvalidFEN)
	})
}

func TestSquares(t *testing.T) {
	t.Run("square index", func(t *testing.T) {
		sq, err := SquareIndex("e4")
		require.NoError(t, err)
		require.Equal(t, chess.Square(28), sq)

		sq, err = SquareIndex("h8")
		require.NoError(t, err)
		require.Equal(t, chess.Square(63), sq)

		_, err = SquareIndex("i9")
		require.Error(t, err)
	})

	t.Run("split move with promotion", func(t *testing.T) {
		from, to, promo, err := SplitMove("e7e8q")
		require.NoError(t, err)
		require.Equal(t, chess.E7, from)
		require.Equal(t, chess.E8, to)
		require.Equal(t, byte('q'), promo)

		_, _, _, err = SplitMove("e7")
		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("count pawns", func(t *testing.T) {
		pos, err := NotnilEngine{}.Parse("4k3/4p3/8/8/8/4P3/4P3/4K3 w - - 0 1")
		require.NoError(t, err)
		require.Equal(t, 2, CountPawns(pos, chess.FileE, chess.White))
		require.Equal(t, 1, CountPawns(pos, chess.FileE, chess.Black))
		require.Equal(t, 3, CountPawns(pos, chess.FileE, chess.NoColor))
		require.Equal(t, 0, CountPawns(pos, chess.FileD, chess.NoColor))
	})
}
