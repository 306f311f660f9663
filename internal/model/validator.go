package model

import "sort"

// Classification is the result of checking one candidate move against a
// board context.
type Classification int

const (
	InvalidMove Classification = iota
	ValidMove
	// ChecksOpponentKing means the move lands on the opponent king. It never
	// happens in a legal game and exists so attack probes share the
	// classification path.
	ChecksOpponentKing
	// NeedsLastMove is a diagonal pawn step onto an empty square: legal only
	// as en passant.
	NeedsLastMove
	NeedsCastlingState
	NeedsPromotionChoice
)

func (c Classification) String() string {
	switch c {
	case ValidMove:
		return "valid"
	case ChecksOpponentKing:
		return "checks_opponent_king"
	case NeedsLastMove:
		return "needs_last_move"
	case NeedsCastlingState:
		return "needs_castling_state"
	case NeedsPromotionChoice:
		return "needs_promotion_choice"
	}
	return "invalid"
}

// maxSimulationDepth bounds the classify -> simulate -> attack probe ->
// classify recursion. Sessions at this depth or deeper never simulate, so
// an attack probe is at most one ply deep.
const maxSimulationDepth = 1

// Context is everything the rules need to judge a move.
type Context struct {
	Turn     Color
	Grid     *Grid
	LastMove *Movement
	// Castling holds the rights of the side to move. Nil means no rights.
	Castling *CastlingState
}

// Verdict is the fully resolved answer for one move, including the state
// updates the move implies.
type Verdict struct {
	Classification Classification
	// Legal is true when the move may be played; if NeedsPromotion is also
	// set the caller must supply a promotion piece.
	Legal          bool
	NeedsPromotion bool
	// EnPassant is the square of the pawn captured en passant.
	EnPassant *Coordinate
	Castle    *CastleRookMove
	// Castling is the mover's rights after the move; OpponentLost lists the
	// opponent flags the move removes (a rook taken on its corner).
	Castling     CastlingState
	OpponentLost CastlingState
}

// Validator is the stateless rule engine. Each query opens its own
// validation session, so a Validator may be shared between games.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// session evaluates queries against one fixed context. Its cache is only
// valid for that context and dies with the session.
type session struct {
	ctx   Context
	depth int
	// probe sessions answer "does this piece attack that square" for the
	// side in ctx.Turn.
	probe       bool
	cache       map[[2]Coordinate]Classification
	simulations int
}

func (v *Validator) open(ctx Context) *session {
	return newSession(ctx, 0, false)
}

func newSession(ctx Context, depth int, probe bool) *session {
	return &session{
		ctx:   ctx,
		depth: depth,
		probe: probe,
		cache: make(map[[2]Coordinate]Classification),
	}
}

// Classify returns the raw classification of origin -> destination.
func (v *Validator) Classify(ctx Context, origin, destination Coordinate) Classification {
	return v.open(ctx).classify(origin, destination)
}

// IsAttacked reports whether the opponent of ctx.Turn attacks c.
func (v *Validator) IsAttacked(ctx Context, c Coordinate) bool {
	s := v.open(ctx)
	return s.attacked(ctx.Grid, c, ctx.Turn.Opposite())
}

// KingAttacked reports whether the king of the side to move is attacked.
func (v *Validator) KingAttacked(ctx Context) bool {
	return v.open(ctx).kingAttackedOn(ctx.Grid, ctx.Turn)
}

// Check resolves a move completely, including en passant and castling.
func (v *Validator) Check(ctx Context, origin, destination Coordinate) Verdict {
	s := v.open(ctx)
	verdict := Verdict{Classification: s.classify(origin, destination)}
	switch verdict.Classification {
	case ValidMove:
		verdict.Legal = true
	case NeedsPromotionChoice:
		verdict.Legal = true
		verdict.NeedsPromotion = true
	case NeedsLastMove:
		verdict.EnPassant, verdict.Legal = s.enPassant(origin, destination)
	case NeedsCastlingState:
		verdict.Castle, verdict.Legal = s.castle(origin, destination)
	}
	if verdict.Legal {
		verdict.Castling, verdict.OpponentLost = s.castlingAfter(origin, destination)
	}
	return verdict
}

// TurnState determines check, checkmate and stalemate for the side to move.
func (v *Validator) TurnState(ctx Context) TurnState {
	s := v.open(ctx)
	attacked := s.kingAttackedOn(ctx.Grid, ctx.Turn)
	hasMove := false
	for _, p := range ctx.Grid.Pieces(ctx.Turn) {
		s.eachCandidate(p, func(dest Coordinate) bool {
			hasMove = s.legal(p.Coordinate, dest)
			return !hasMove
		})
		if hasMove {
			break
		}
	}
	switch {
	case hasMove && attacked:
		return Check
	case hasMove:
		return MoveTurn
	case attacked:
		return Checkmate
	}
	return Stalemate
}

// LegalDestinations lists every square the piece on origin may move to,
// in row-major order.
func (v *Validator) LegalDestinations(ctx Context, origin Coordinate) []Coordinate {
	dests := make([]Coordinate, 0)
	if !origin.Valid() {
		return dests
	}
	p := ctx.Grid.Get(origin)
	if p == nil || p.Color != ctx.Turn {
		return dests
	}
	s := v.open(ctx)
	s.eachCandidate(p, func(dest Coordinate) bool {
		if s.legal(origin, dest) {
			dests = append(dests, dest)
		}
		return true
	})
	sort.Slice(dests, func(i, j int) bool {
		if dests[i].Row != dests[j].Row {
			return dests[i].Row < dests[j].Row
		}
		return dests[i].Column < dests[j].Column
	})
	return dests
}

// ValidPromotion reports whether a pawn may promote to t.
func ValidPromotion(t PieceType) bool {
	return t.Valid() && t != Pawn && t != King
}

// eachCandidate walks every on-board destination of p's move table,
// extending sliding directions one step at a time until blocked. It stops
// when fn returns false.
func (s *session) eachCandidate(p *Piece, fn func(Coordinate) bool) {
	limit := 1
	if p.Type.Extends() {
		limit = BoardSize - 1
	}
	for dir := range p.Moves() {
		for i := 1; i <= limit; i++ {
			dest := p.Coordinate.Add(dir.Scale(i))
			if !dest.Valid() {
				break
			}
			if !fn(dest) {
				return
			}
			if s.ctx.Grid.Get(dest) != nil {
				break
			}
		}
	}
}

// legal reports whether origin -> dest is playable, resolving the deferred
// special cases.
func (s *session) legal(origin, dest Coordinate) bool {
	switch s.classify(origin, dest) {
	case ValidMove, NeedsPromotionChoice:
		return true
	case NeedsLastMove:
		_, ok := s.enPassant(origin, dest)
		return ok
	case NeedsCastlingState:
		_, ok := s.castle(origin, dest)
		return ok
	}
	return false
}

func (s *session) classify(origin, dest Coordinate) Classification {
	key := [2]Coordinate{origin, dest}
	if c, ok := s.cache[key]; ok {
		return c
	}
	c := s.classifyUncached(origin, dest)
	s.cache[key] = c
	return c
}

func (s *session) classifyUncached(origin, dest Coordinate) Classification {
	if origin == dest || !origin.Valid() || !dest.Valid() {
		return InvalidMove
	}
	g := s.ctx.Grid
	p := g.Get(origin)
	if p == nil || p.Color != s.ctx.Turn {
		return InvalidMove
	}
	target := g.Get(dest)
	if target != nil && target.Color == p.Color {
		return InvalidMove
	}

	dir := origin.DirectionTo(dest)
	steps := 1
	if p.Type.Extends() {
		unit := origin.NormalizedDirectionTo(dest)
		if steps = dir.steps(unit); steps == 0 {
			return InvalidMove
		}
		dir = unit
	}
	special, ok := p.Moves()[dir]
	if !ok {
		return InvalidMove
	}

	switch special {
	case Castle:
		return NeedsCastlingState
	case DoublePawnMove:
		mid := origin.Add(Direction{DRow: p.Color.forward()})
		if s.probe || origin.Row != p.Color.homeRow()+p.Color.forward() || target != nil || g.Get(mid) != nil {
			return InvalidMove
		}
	case PawnMove:
		if s.probe || target != nil {
			return InvalidMove
		}
	case PawnAttack:
		if target == nil {
			if s.probe {
				return ValidMove
			}
			return NeedsLastMove
		}
	}

	for i := 1; i < steps; i++ {
		if g.Get(origin.Add(dir.Scale(i))) != nil {
			return InvalidMove
		}
	}

	if s.depth < maxSimulationDepth && s.exposesKing(origin, dest, nil) {
		return InvalidMove
	}
	if target != nil && target.Type == King {
		return ChecksOpponentKing
	}
	if p.Type == Pawn && dest.Row == p.Color.Opposite().homeRow() && !s.probe {
		return NeedsPromotionChoice
	}
	return ValidMove
}

// exposesKing plays origin -> dest on a scratch grid, optionally removing
// the piece on extra first, and reports whether the mover's king is then
// attacked.
func (s *session) exposesKing(origin, dest Coordinate, extra *Coordinate) bool {
	s.simulations++
	color := s.ctx.Grid.Get(origin).Color
	scratch := s.ctx.Grid.Copy()
	if extra != nil {
		scratch.Set(*extra, nil)
	}
	scratch.Set(dest, nil)
	scratch.Swap(origin, dest)
	return s.kingAttackedOn(scratch, color)
}

func (s *session) kingAttackedOn(g *Grid, color Color) bool {
	king := g.King(color)
	if king == nil {
		return false
	}
	return s.attacked(g, king.Coordinate, color.Opposite())
}

// attacked reports whether any piece of colour by attacks c on g. The probe
// runs one level deeper than s and therefore never simulates.
func (s *session) attacked(g *Grid, c Coordinate, by Color) bool {
	probe := newSession(Context{Turn: by, Grid: g}, s.depth+1, true)
	for _, p := range g.Pieces(by) {
		switch probe.classify(p.Coordinate, c) {
		case ValidMove, ChecksOpponentKing:
			return true
		}
	}
	return false
}
