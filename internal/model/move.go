package model

// CastleRookMove records the rook relocation that accompanies castling.
type CastleRookMove struct {
	From Coordinate `json:"from"`
	To   Coordinate `json:"to"`
}

// Movement is one accepted ply. Piece is a snapshot of the mover taken
// before the move, so its coordinate is the origin. Captured is a snapshot
// of the captured piece; for en passant its coordinate differs from
// Destination.
type Movement struct {
	Piece       Piece           `json:"piece"`
	Destination Coordinate      `json:"destination"`
	Captured    *Piece          `json:"captured,omitempty"`
	Promotion   PieceType       `json:"promotion,omitempty"`
	Castle      *CastleRookMove `json:"castle,omitempty"`
	// Check and Mate describe the position the move produced; they only
	// feed the notation.
	Check bool `json:"check,omitempty"`
	Mate  bool `json:"mate,omitempty"`
}

func (m Movement) Origin() Coordinate {
	return m.Piece.Coordinate
}

// IsDoublePawnMove reports whether the movement was a two-square pawn
// advance.
func (m Movement) IsDoublePawnMove() bool {
	return m.Piece.Type == Pawn && abs(m.Destination.Row-m.Origin().Row) == 2 && m.Destination.Column == m.Origin().Column
}

// SameAs compares two movements structurally.
func (m Movement) SameAs(other Movement) bool {
	if !m.Piece.SameAs(&other.Piece) || m.Destination != other.Destination || m.Promotion != other.Promotion {
		return false
	}
	if !m.Captured.SameAs(other.Captured) {
		return false
	}
	if (m.Castle == nil) != (other.Castle == nil) {
		return false
	}
	return m.Castle == nil || *m.Castle == *other.Castle
}
