package model

import "fmt"

// BoardSize is the number of rows and columns on the grid.
const BoardSize = 8

// Coordinate is a square on the grid. Row 0 is white's back rank and
// column 0 is the a-file.
type Coordinate struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Direction is a step vector between two coordinates.
type Direction struct {
	DRow    int `json:"dRow"`
	DColumn int `json:"dColumn"`
}

func (c Coordinate) Valid() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Column >= 0 && c.Column < BoardSize
}

func (c Coordinate) Add(d Direction) Coordinate {
	return Coordinate{Row: c.Row + d.DRow, Column: c.Column + d.DColumn}
}

// DirectionTo returns the raw delta from c to other.
func (c Coordinate) DirectionTo(other Coordinate) Direction {
	return Direction{DRow: other.Row - c.Row, DColumn: other.Column - c.Column}
}

// NormalizedDirectionTo returns the delta from c to other with each
// component clamped to -1, 0 or 1.
func (c Coordinate) NormalizedDirectionTo(other Coordinate) Direction {
	d := c.DirectionTo(other)
	return Direction{DRow: sign(d.DRow), DColumn: sign(d.DColumn)}
}

// String returns the algebraic name of the square, e.g. "e2".
func (c Coordinate) String() string {
	if !c.Valid() {
		return fmt.Sprintf("(%d,%d)", c.Row, c.Column)
	}
	return fmt.Sprintf("%c%d", c.Column+'a', c.Row+1)
}

func (c Coordinate) file() string {
	return fmt.Sprintf("%c", c.Column+'a')
}

// ParseCoordinate reads an algebraic square name such as "e2".
func ParseCoordinate(s string) (Coordinate, error) {
	if len(s) != 2 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	c := Coordinate{Row: int(s[1] - '1'), Column: int(s[0] - 'a')}
	if !c.Valid() {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	return c, nil
}

func (d Direction) Scale(n int) Direction {
	return Direction{DRow: d.DRow * n, DColumn: d.DColumn * n}
}

func (d Direction) IsZero() bool {
	return d.DRow == 0 && d.DColumn == 0
}

// steps reports how many times unit must be repeated to produce d, or 0
// when d is not a positive multiple of unit.
func (d Direction) steps(unit Direction) int {
	if unit.IsZero() {
		return 0
	}
	n := abs(d.DRow)
	if n == 0 {
		n = abs(d.DColumn)
	}
	if n == 0 || unit.Scale(n) != d {
		return 0
	}
	return n
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
