package model

import (
	"fmt"
	"strings"
	"unicode"
)

// emptyCode marks an empty square (both characters) in the board text.
const emptyCode = '-'

// StandardPosition is the starting position in board text, row 0 first.
const StandardPosition = `
wRwNwBwQwKwBwNwR
wPwPwPwPwPwPwPwP
----------------
----------------
----------------
----------------
bPbPbPbPbPbPbPbP
bRbNbBbQbKbBbNbR
`

// StandardGrid returns a fresh grid in the starting position.
func StandardGrid() *Grid {
	g, err := ParseGrid(StandardPosition)
	if err != nil {
		panic(err)
	}
	return g
}

// ParseGrid builds a grid from board text: two characters per square,
// colour ('w', 'b') then type ('P', 'B', 'N', 'R', 'Q', 'K'), "--" for an
// empty square, row-major starting at row 0. Whitespace is ignored.
func ParseGrid(text string) (*Grid, error) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	if len(compact) != BoardSize*BoardSize*2 {
		return nil, fmt.Errorf("%w: want %d characters, got %d", ErrMalformedBoardText, BoardSize*BoardSize*2, len(compact))
	}

	g := &Grid{}
	for i := 0; i < BoardSize*BoardSize; i++ {
		colorCode, typeCode := compact[2*i], compact[2*i+1]
		at := Coordinate{Row: i / BoardSize, Column: i % BoardSize}
		if colorCode == emptyCode && typeCode == emptyCode {
			continue
		}
		var color Color
		switch colorCode {
		case 'w':
			color = White
		case 'b':
			color = Black
		default:
			return nil, fmt.Errorf("%w: bad colour %q at %v", ErrMalformedBoardText, colorCode, at)
		}
		t, ok := pieceTypeFromCode(typeCode)
		if !ok {
			return nil, fmt.Errorf("%w: bad piece %q at %v", ErrMalformedBoardText, typeCode, at)
		}
		g.cells[at.Row][at.Column] = NewPiece(t, color, at)
	}
	g.refresh()
	return g, nil
}

// String renders the grid as board text, one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := range g.cells {
		for _, p := range g.cells[r] {
			if p == nil {
				sb.WriteByte(emptyCode)
				sb.WriteByte(emptyCode)
				continue
			}
			sb.WriteByte(p.Color.code())
			sb.WriteByte(p.Type.Code())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
