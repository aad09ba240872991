// Package render draws board diagrams.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/notnil/chess"

	"chessbots/rules"
)

const (
	SquareSize = 48
	margin     = 24
)

var glyphs = map[chess.Piece]string{
	chess.WhiteKing:   "♔",
	chess.WhiteQueen:  "♕",
	chess.WhiteRook:   "♖",
	chess.WhiteBishop: "♗",
	chess.WhiteKnight: "♘",
	chess.WhitePawn:   "♙",
	chess.BlackKing:   "♚",
	chess.BlackQueen:  "♛",
	chess.BlackRook:   "♜",
	chess.BlackBishop: "♝",
	chess.BlackKnight: "♞",
	chess.BlackPawn:   "♟",
}

const (
	lightSquare = "fill:rgb(240,217,181)"
	darkSquare  = "fill:rgb(181,136,99)"
	pieceStyle  = "font-size:36px;text-anchor:middle;dominant-baseline:central;font-family:serif"
	labelStyle  = "font-size:12px;text-anchor:middle;font-family:sans-serif;fill:#333"
)

// SVG writes pos as a board diagram, White at the bottom, with an optional
// caption above the board.
func SVG(w io.Writer, pos rules.Position, caption string) {
	size := 8*SquareSize + 2*margin
	canvas := svg.New(w)
	canvas.Start(size, size)
	canvas.Rect(0, 0, size, size, "fill:white")
	if caption != "" {
		canvas.Text(size/2, margin/2+4, caption, labelStyle)
	}

	for rank := 7; rank >= 0; rank-- {
		y := margin + (7-rank)*SquareSize
		for file := 0; file < 8; file++ {
			x := margin + file*SquareSize
			style := darkSquare
			if (file+rank)%2 == 1 {
				style = lightSquare
			}
			canvas.Rect(x, y, SquareSize, SquareSize, style)

			sq := chess.NewSquare(chess.File(file), chess.Rank(rank))
			if glyph, ok := glyphs[pos.PieceAt(sq)]; ok {
				canvas.Text(x+SquareSize/2, y+SquareSize/2, glyph, pieceStyle)
			}
		}
		canvas.Text(margin/2, y+SquareSize/2+4, fmt.Sprint(rank+1), labelStyle)
	}
	for file := 0; file < 8; file++ {
		canvas.Text(margin+file*SquareSize+SquareSize/2, size-margin/2+4, string(rune('a'+file)), labelStyle)
	}
	canvas.End()
}
