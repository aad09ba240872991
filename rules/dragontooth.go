package rules

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

// DragontoothEngine is backed by github.com/dylhunn/dragontoothmg. Its board
// indices share the a1 = 0 layout with notnil squares.
type DragontoothEngine struct{}

func (DragontoothEngine) Name() string { return "dragontooth" }

func (DragontoothEngine) Parse(fen string) (Position, error) {
	if err := validateFEN(fen); err != nil {
		return nil, err
	}
	var board dragontoothmg.Board
	err := guard("parse", func() error {
		board = dragontoothmg.ParseFen(fen)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	return &DragontoothPosition{board: board}, nil
}

// DragontoothPosition holds a board by value; copies are independent.
type DragontoothPosition struct {
	board dragontoothmg.Board
}

func (p *DragontoothPosition) LegalMoves() ([]string, error) {
	var moves []string
	err := guard("legal moves", func() error {
		b := p.board
		legal := b.GenerateLegalMoves()
		moves = make([]string, 0, len(legal))
		for i := range legal {
			moves = append(moves, legal[i].String())
		}
		return nil
	})
	return moves, err
}

func (p *DragontoothPosition) Apply(move string) (Position, error) {
	next := p.board
	err := guard("apply", func() error {
		b := p.board
		for _, m := range b.GenerateLegalMoves() {
			if m.String() == move {
				next.Apply(m)
				return nil
			}
		}
		return fmt.Errorf("%w: %q", ErrIllegalMove, move)
	})
	if err != nil {
		return nil, err
	}
	return &DragontoothPosition{board: next}, nil
}

func (p *DragontoothPosition) PieceAt(sq chess.Square) chess.Piece {
	if sq < chess.A1 || sq > chess.H8 {
		return chess.NoPiece
	}
	bit := uint64(1) << uint(sq)
	switch {
	case p.board.White.All&bit != 0:
		return chess.NewPiece(pieceType(&p.board.White, bit), chess.White)
	case p.board.Black.All&bit != 0:
		return chess.NewPiece(pieceType(&p.board.Black, bit), chess.Black)
	}
	return chess.NoPiece
}

func pieceType(bb *dragontoothmg.Bitboards, bit uint64) chess.PieceType {
	switch {
	case bb.Pawns&bit != 0:
		return chess.Pawn
	case bb.Knights&bit != 0:
		return chess.Knight
	case bb.Bishops&bit != 0:
		return chess.Bishop
	case bb.Rooks&bit != 0:
		return chess.Rook
	case bb.Queens&bit != 0:
		return chess.Queen
	case bb.Kings&bit != 0:
		return chess.King
	}
	return chess.NoPieceType
}

func (p *DragontoothPosition) Turn() chess.Color {
	if p.board.Wtomove {
		return chess.White
	}
	return chess.Black
}

func (p *DragontoothPosition) Status() Status {
	b := p.board
	inCheck := b.OurKingInCheck()
	if len(b.GenerateLegalMoves()) == 0 {
		if inCheck {
			return Checkmate
		}
		return Stalemate
	}
	if inCheck {
		return Check
	}
	return Ongoing
}

// validateFEN parses fen with notnil/chess, which checks the layout, and
// adds the one king per side dragontoothmg assumes without checking.
func validateFEN(fen string) error {
	return guard("parse", func() error {
		opt, err := chess.FEN(fen)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFEN, err)
		}
		board := chess.NewGame(opt).Position().Board()
		kings := map[chess.Color]int{}
		for sq := chess.A1; sq <= chess.H8; sq++ {
			if p := board.Piece(sq); p.Type() == chess.King {
				kings[p.Color()]++
			}
		}
		if kings[chess.White] != 1 || kings[chess.Black] != 1 {
			return fmt.Errorf("%w: %q: want one king per side", ErrInvalidFEN, fen)
		}
		return nil
	})
}

// kingInCheck reports whether the side to move in fen is in check.
func kingInCheck(fen string) (bool, error) {
	var check bool
	err := guard("check", func() error {
		board := dragontoothmg.ParseFen(fen)
		check = board.OurKingInCheck()
		return nil
	})
	return check, err
}
