package model

import "fmt"

// Grid is the 8x8 board. It owns every piece placed on it and keeps the
// white and black piece sets in step with the cell contents.
//
// A Grid is not safe for concurrent use.
type Grid struct {
	cells [BoardSize][BoardSize]*Piece
	white map[*Piece]struct{}
	black map[*Piece]struct{}
}

// NewGrid returns an empty grid.
func NewGrid() *Grid {
	g := &Grid{}
	g.refresh()
	return g
}

func mustBeOnBoard(c Coordinate) {
	if !c.Valid() {
		panic(fmt.Errorf("%w: %v", ErrOutOfBounds, c))
	}
}

func (g *Grid) Get(c Coordinate) *Piece {
	mustBeOnBoard(c)
	return g.cells[c.Row][c.Column]
}

// Set places p (which may be nil) on c and returns the previous occupant.
// A non-nil p has its coordinate updated to c.
func (g *Grid) Set(c Coordinate, p *Piece) *Piece {
	mustBeOnBoard(c)
	prev := g.cells[c.Row][c.Column]
	g.cells[c.Row][c.Column] = p
	if p != nil {
		p.Coordinate = c
	}
	g.refresh()
	return prev
}

// Swap exchanges the contents of two squares and updates the coordinates
// of their occupants.
func (g *Grid) Swap(a, b Coordinate) {
	mustBeOnBoard(a)
	mustBeOnBoard(b)
	if a == b {
		panic(fmt.Errorf("%w: swap of %v with itself", ErrInvalidCoordinate, a))
	}
	pa, pb := g.cells[a.Row][a.Column], g.cells[b.Row][b.Column]
	g.cells[a.Row][a.Column], g.cells[b.Row][b.Column] = pb, pa
	if pa != nil {
		pa.Coordinate = b
	}
	if pb != nil {
		pb.Coordinate = a
	}
	g.refresh()
}

// refresh rebuilds the colour sets from the cells.
func (g *Grid) refresh() {
	g.white = make(map[*Piece]struct{})
	g.black = make(map[*Piece]struct{})
	for r := range g.cells {
		for c, p := range g.cells[r] {
			if p == nil {
				continue
			}
			p.Coordinate = Coordinate{Row: r, Column: c}
			if p.Color == White {
				g.white[p] = struct{}{}
			} else {
				g.black[p] = struct{}{}
			}
		}
	}
}

func (g *Grid) set(color Color) map[*Piece]struct{} {
	if color == White {
		return g.white
	}
	return g.black
}

// Contains reports whether this exact piece is on the grid.
func (g *Grid) Contains(p *Piece) bool {
	if p == nil {
		return false
	}
	_, ok := g.set(p.Color)[p]
	return ok
}

// Pieces returns the pieces of one colour in row-major order.
func (g *Grid) Pieces(color Color) []*Piece {
	set := g.set(color)
	pieces := make([]*Piece, 0, len(set))
	for r := range g.cells {
		for _, p := range g.cells[r] {
			if _, ok := set[p]; ok {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

// King returns the king of the given colour, or nil if there is none.
func (g *Grid) King(color Color) *Piece {
	for _, p := range g.Pieces(color) {
		if p.Type == King {
			return p
		}
	}
	return nil
}

// Copy returns a deep copy. The copy shares no piece with g.
func (g *Grid) Copy() *Grid {
	cp := &Grid{}
	for r := range g.cells {
		for c, p := range g.cells[r] {
			if p != nil {
				cp.cells[r][c] = p.clone()
			}
		}
	}
	cp.refresh()
	return cp
}

// Equal compares grids structurally: same piece type and colour on every
// square.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil {
		return false
	}
	for r := range g.cells {
		for c, p := range g.cells[r] {
			if !p.SameAs(other.cells[r][c]) {
				return false
			}
		}
	}
	return true
}

// ValidateGrid checks the structural invariants of a playable position:
// one king per side and no pawn on either back rank.
func ValidateGrid(g *Grid) error {
	for _, color := range []Color{White, Black} {
		kings := 0
		for _, p := range g.Pieces(color) {
			switch {
			case p.Type == King:
				kings++
			case p.Type == Pawn && (p.Coordinate.Row == 0 || p.Coordinate.Row == BoardSize-1):
				return fmt.Errorf("%w: %s pawn on back rank at %v", ErrInvalidGrid, color, p.Coordinate)
			}
		}
		if kings != 1 {
			return fmt.Errorf("%w: %s has %d kings", ErrInvalidGrid, color, kings)
		}
	}
	return nil
}
