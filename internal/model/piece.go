package model

import "fmt"

type PieceType string

const (
	Pawn   PieceType = "pawn"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Rook   PieceType = "rook"
	Queen  PieceType = "queen"
	King   PieceType = "king"
)

var pieceTypes = []PieceType{Pawn, Bishop, Knight, Rook, Queen, King}

// Code returns the single letter used by the board text encoding.
func (t PieceType) Code() byte {
	switch t {
	case Pawn:
		return 'P'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	case Rook:
		return 'R'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	}
	return emptyCode
}

// notation is the SAN prefix; pawns have none.
func (t PieceType) notation() string {
	if t == Pawn || !t.Valid() {
		return ""
	}
	return string(t.Code())
}

func (t PieceType) Valid() bool {
	for _, pt := range pieceTypes {
		if pt == t {
			return true
		}
	}
	return false
}

// Extends reports whether the piece slides: its directions may repeat until
// blocked or off the board.
func (t PieceType) Extends() bool {
	return t == Bishop || t == Rook || t == Queen
}

func pieceTypeFromCode(b byte) (PieceType, bool) {
	for _, pt := range pieceTypes {
		if pt.Code() == b {
			return pt, true
		}
	}
	return "", false
}

// ParsePieceType accepts either a full name ("queen") or a letter code ("Q").
func ParsePieceType(s string) (PieceType, error) {
	if t := PieceType(s); t.Valid() {
		return t, nil
	}
	if len(s) == 1 {
		if t, ok := pieceTypeFromCode(s[0]); ok {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown piece type %q", s)
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) code() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

// homeRow is the back rank of the colour.
func (c Color) homeRow() int {
	if c == White {
		return 0
	}
	return BoardSize - 1
}

// forward is the row step of the colour's pawns.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

// Piece is a single chess piece. The pointer is the piece's identity: the
// same logical piece keeps the same *Piece across moves, while Type and
// Color never change after construction. Use SameAs for structural
// comparison.
type Piece struct {
	Type       PieceType  `json:"type"`
	Color      Color      `json:"color"`
	Coordinate Coordinate `json:"coordinate"`
}

func NewPiece(t PieceType, c Color, at Coordinate) *Piece {
	return &Piece{Type: t, Color: c, Coordinate: at}
}

// SameAs reports whether both pieces have the same type, colour and
// coordinate, regardless of identity.
func (p *Piece) SameAs(other *Piece) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Type == other.Type && p.Color == other.Color && p.Coordinate == other.Coordinate
}

func (p *Piece) clone() *Piece {
	cp := *p
	return &cp
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s@%s", p.Color, p.Type, p.Coordinate)
}

// SpecialCase tags a direction in a piece's move table with the extra rule
// that applies to it.
type SpecialCase int

const (
	NoSpecialCase SpecialCase = iota
	Castle
	DoublePawnMove
	PawnAttack
	PawnMove
)

// moveTable is the candidate directions of one piece type for one colour.
type moveTable map[Direction]SpecialCase

var (
	orthogonal = []Direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal   = []Direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	knightJump = []Direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

var moveTables = map[Color]map[PieceType]moveTable{
	White: buildMoveTables(White),
	Black: buildMoveTables(Black),
}

func buildMoveTables(c Color) map[PieceType]moveTable {
	plain := func(dirs ...[]Direction) moveTable {
		t := moveTable{}
		for _, ds := range dirs {
			for _, d := range ds {
				t[d] = NoSpecialCase
			}
		}
		return t
	}

	king := plain(orthogonal, diagonal)
	king[Direction{0, 2}] = Castle
	king[Direction{0, -2}] = Castle

	f := c.forward()
	pawn := moveTable{
		{f, 0}:     PawnMove,
		{2 * f, 0}: DoublePawnMove,
		{f, 1}:     PawnAttack,
		{f, -1}:    PawnAttack,
	}

	return map[PieceType]moveTable{
		Pawn:   pawn,
		Knight: plain(knightJump),
		Bishop: plain(diagonal),
		Rook:   plain(orthogonal),
		Queen:  plain(orthogonal, diagonal),
		King:   king,
	}
}

// Moves returns the candidate directions of the piece and their special
// cases. The returned map is shared and must not be modified.
func (p *Piece) Moves() map[Direction]SpecialCase {
	return moveTables[p.Color][p.Type]
}
