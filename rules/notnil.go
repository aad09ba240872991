package rules

import (
	"fmt"

	"github.com/notnil/chess"
)

// NotnilEngine is backed by github.com/notnil/chess.
type NotnilEngine struct{}

func (NotnilEngine) Name() string { return "notnil" }

func (NotnilEngine) Parse(fen string) (Position, error) {
	var pos *chess.Position
	err := guard("parse", func() error {
		opt, err := chess.FEN(fen)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFEN, err)
		}
		pos = chess.NewGame(opt).Position()
		return nil
	})
	if err != nil {
		return nil, err
	}
	check, err := kingInCheck(pos.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	return &NotnilPosition{pos: pos, check: check}, nil
}

// NotnilPosition wraps an immutable *chess.Position. check records whether
// the side to move is in check.
type NotnilPosition struct {
	pos   *chess.Position
	check bool
}

func (p *NotnilPosition) LegalMoves() ([]string, error) {
	var moves []string
	err := guard("legal moves", func() error {
		notation := chess.UCINotation{}
		valid := p.pos.ValidMoves()
		moves = make([]string, 0, len(valid))
		for _, m := range valid {
			moves = append(moves, notation.Encode(p.pos, m))
		}
		return nil
	})
	return moves, err
}

func (p *NotnilPosition) Apply(move string) (Position, error) {
	next := &NotnilPosition{}
	err := guard("apply", func() error {
		notation := chess.UCINotation{}
		for _, m := range p.pos.ValidMoves() {
			if notation.Encode(p.pos, m) == move {
				next.pos = p.pos.Update(m)
				next.check = m.HasTag(chess.Check)
				return nil
			}
		}
		return fmt.Errorf("%w: %q in %s", ErrIllegalMove, move, p.pos)
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

func (p *NotnilPosition) PieceAt(sq chess.Square) chess.Piece {
	if sq < chess.A1 || sq > chess.H8 {
		return chess.NoPiece
	}
	return p.pos.Board().Piece(sq)
}

func (p *NotnilPosition) Turn() chess.Color { return p.pos.Turn() }

func (p *NotnilPosition) Status() Status {
	switch p.pos.Status() {
	case chess.Checkmate:
		return Checkmate
	case chess.Stalemate:
		return Stalemate
	}
	if p.check {
		return Check
	}
	return Ongoing
}

func (p *NotnilPosition) String() string { return p.pos.String() }
