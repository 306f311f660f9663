// Package render draws a grid as an SVG image.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

const (
	defaultSquareSize = 60
	lightSquare       = "#f0d9b5"
	darkSquare        = "#b58863"
	highlightSquare   = "#cdd26a"
)

var glyphs = map[model.Color]map[model.PieceType]string{
	model.White: {
		model.King: "♔", model.Queen: "♕", model.Rook: "♖",
		model.Bishop: "♗", model.Knight: "♘", model.Pawn: "♙",
	},
	model.Black: {
		model.King: "♚", model.Queen: "♛", model.Rook: "♜",
		model.Bishop: "♝", model.Knight: "♞", model.Pawn: "♟",
	},
}

// Options control the drawing. The zero value draws 60px squares with
// white at the bottom.
type Options struct {
	SquareSize int
	// Flip puts black at the bottom.
	Flip       bool
	Highlights []model.Coordinate
}

// Board writes grid to w as an SVG document, rank 8 at the top unless
// opts.Flip is set.
func Board(w io.Writer, grid *model.Grid, opts Options) {
	size := opts.SquareSize
	if size <= 0 {
		size = defaultSquareSize
	}
	highlighted := make(map[model.Coordinate]bool, len(opts.Highlights))
	for _, c := range opts.Highlights {
		highlighted[c] = true
	}

	side := size * model.BoardSize
	canvas := svg.New(w)
	canvas.Start(side, side)
	canvas.Title("chess board")

	pieceStyle := fmt.Sprintf("font-size:%dpx;text-anchor:middle;dominant-baseline:central", size*3/4)
	for row := 0; row < model.BoardSize; row++ {
		for col := 0; col < model.BoardSize; col++ {
			c := model.Coordinate{Row: row, Column: col}
			x, y := origin(c, size, opts.Flip)

			fill := lightSquare
			if (row+col)%2 == 0 {
				fill = darkSquare
			}
			if highlighted[c] {
				fill = highlightSquare
			}
			canvas.Rect(x, y, size, size, "fill:"+fill)

			if p := grid.Get(c); p != nil {
				canvas.Text(x+size/2, y+size/2, glyphs[p.Color][p.Type], pieceStyle)
			}
		}
	}
	labels(canvas, size, opts.Flip)
	canvas.End()
}

// origin returns the top-left pixel of square c.
func origin(c model.Coordinate, size int, flip bool) (int, int) {
	col, row := c.Column, model.BoardSize-1-c.Row
	if flip {
		col, row = model.BoardSize-1-c.Column, c.Row
	}
	return col * size, row * size
}

func labels(canvas *svg.SVG, size int, flip bool) {
	style := fmt.Sprintf("font-size:%dpx;font-family:sans-serif;fill:#333", size/6)
	canvas.Gstyle(style)
	for i := 0; i < model.BoardSize; i++ {
		file := model.Coordinate{Row: 0, Column: i}
		rank := model.Coordinate{Row: i, Column: 0}
		fx, _ := origin(file, size, flip)
		_, ry := origin(rank, size, flip)
		bottom := model.BoardSize * size
		canvas.Text(fx+size-size/8, bottom-size/16, string('a'+rune(i)))
		canvas.Text(size/16, ry+size/5, fmt.Sprint(i+1))
	}
	canvas.Gend()
}
