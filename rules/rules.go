// Package rules defines the chess rules capability the bots depend on and
// adapters over third-party move generators.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

var (
	ErrInvalidFEN  = errors.New("invalid FEN")
	ErrIllegalMove = errors.New("illegal move")
	ErrUnknown     = errors.New("unknown rules engine")
)

// Status is the game status of a position for the side to move.
type Status int

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// Position is a read-only view of a chess position. Apply never mutates the
// receiver; it returns an independent position with the move played.
type Position interface {
	LegalMoves() ([]string, error)
	Apply(move string) (Position, error)
	PieceAt(sq chess.Square) chess.Piece
	Turn() chess.Color
	Status() Status
}

// Engine builds positions from FEN strings.
type Engine interface {
	Name() string
	Parse(fen string) (Position, error)
}

// New returns the engine registered under name. The empty name selects
// the notnil engine.
func New(name string) (Engine, error) {
	switch strings.ToLower(name) {
	case "", "notnil":
		return NotnilEngine{}, nil
	case "dragontooth", "dragontoothmg":
		return DragontoothEngine{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// guard runs fn and turns a panic inside the rules library into an error.
func guard(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: rules library panic: %v", op, r)
		}
	}()
	return fn()
}
