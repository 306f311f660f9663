package model

// kingHomeColumn is the king's starting column (the e-file).
const kingHomeColumn = 4

func (s *session) castling() CastlingState {
	if s.ctx.Castling == nil {
		return CastlingState{}
	}
	return *s.ctx.Castling
}

// enPassant resolves a NeedsLastMove classification. It returns the square
// of the captured pawn.
func (s *session) enPassant(origin, dest Coordinate) (*Coordinate, bool) {
	last := s.ctx.LastMove
	if last == nil || !last.IsDoublePawnMove() || last.Piece.Color == s.ctx.Turn {
		return nil, false
	}
	passed := last.Destination
	pawn := s.ctx.Grid.Get(passed)
	if pawn == nil || pawn.Type != Pawn || pawn.Color == s.ctx.Turn {
		return nil, false
	}
	if passed.Row != origin.Row || passed.Column != dest.Column {
		return nil, false
	}
	skipped := Coordinate{Row: (last.Origin().Row + passed.Row) / 2, Column: passed.Column}
	if dest != skipped {
		return nil, false
	}
	if s.depth < maxSimulationDepth && s.exposesKing(origin, dest, &passed) {
		return nil, false
	}
	return &passed, true
}

// castle resolves a NeedsCastlingState classification. On success it
// returns the rook relocation.
func (s *session) castle(origin, dest Coordinate) (*CastleRookMove, bool) {
	g := s.ctx.Grid
	king := g.Get(origin)
	if king == nil || king.Type != King {
		return nil, false
	}
	color := king.Color
	if origin != (Coordinate{Row: color.homeRow(), Column: kingHomeColumn}) {
		return nil, false
	}

	rights := s.castling()
	step := sign(dest.Column - origin.Column)
	rookFrom := Coordinate{Row: origin.Row, Column: BoardSize - 1}
	if step < 0 {
		if !rights.Left {
			return nil, false
		}
		rookFrom.Column = 0
	} else if !rights.Right {
		return nil, false
	}
	rook := g.Get(rookFrom)
	if rook == nil || rook.Type != Rook || rook.Color != color {
		return nil, false
	}

	lo, hi := min(origin.Column, rookFrom.Column), max(origin.Column, rookFrom.Column)
	for c := lo + 1; c < hi; c++ {
		if g.Get(Coordinate{Row: origin.Row, Column: c}) != nil {
			return nil, false
		}
	}

	// Castling out of check, through an attacked square or into one is
	// illegal.
	enemy := color.Opposite()
	transit := origin.Add(Direction{DColumn: step})
	if s.attacked(g, origin, enemy) || s.attacked(g, transit, enemy) || s.attacked(g, dest, enemy) {
		return nil, false
	}

	s.simulations++
	scratch := g.Copy()
	scratch.Swap(origin, dest)
	scratch.Swap(rookFrom, transit)
	if s.kingAttackedOn(scratch, color) {
		return nil, false
	}
	return &CastleRookMove{From: rookFrom, To: transit}, true
}

// castlingAfter computes the mover's castling rights after origin -> dest
// and the opponent flags lost by the move.
func (s *session) castlingAfter(origin, dest Coordinate) (CastlingState, CastlingState) {
	g := s.ctx.Grid
	mover := g.Get(origin)
	var lost, opponentLost CastlingState

	switch {
	case mover.Type == King:
		lost = CastlingState{Left: true, Right: true}
	case mover.Type == Rook && origin.Row == mover.Color.homeRow():
		lost = cornerFlank(origin.Column)
	}

	if target := g.Get(dest); target != nil && target.Type == Rook && dest.Row == target.Color.homeRow() {
		opponentLost = cornerFlank(dest.Column)
	}
	return s.castling().spend(lost), opponentLost
}

func cornerFlank(column int) CastlingState {
	switch column {
	case 0:
		return CastlingState{Left: true}
	case BoardSize - 1:
		return CastlingState{Right: true}
	}
	return CastlingState{}
}
