package model

import "fmt"

// Notation renders the movement in standard algebraic style ("Nf3",
// "exd6", "O-O", "e8=Q#"). Moves are not disambiguated.
func (m Movement) Notation() string {
	suffix := ""
	switch {
	case m.Mate:
		suffix = "#"
	case m.Check:
		suffix = "+"
	}

	if m.Castle != nil {
		if m.Destination.Column > m.Origin().Column {
			return "O-O" + suffix
		}
		return "O-O-O" + suffix
	}

	prefix := m.Piece.Type.notation()
	capture := ""
	if m.Captured != nil {
		capture = "x"
		if m.Piece.Type == Pawn {
			prefix = m.Origin().file()
		}
	}
	promotion := ""
	if m.Promotion != "" {
		promotion = "=" + string(m.Promotion.Code())
	}
	return fmt.Sprintf("%s%s%s%s%s", prefix, capture, m.Destination, promotion, suffix)
}
