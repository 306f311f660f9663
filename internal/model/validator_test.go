package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// White rook a1 and king g1 against a black king boxed in on g8.
	backRankPosition = `
wR----------wK--
----------wPwPwP
----------------
----------------
----------------
----------------
----------bPbPbP
------------bK--
`
	// White bishop e2 pinned by the black rook on e8.
	pinnedBishopPosition = `
--------wK------
--------wB------
----------------
----------------
----------------
----------------
----------------
--------bR----bK
`
	// White rook c3 checks the black king while pinned against its own
	// king by the bishop on e5.
	pinnedCheckerPosition = `
wK--------------
----------------
----wR----------
----------------
--------bB------
----------------
----------------
----bK----------
`
	// Black to move, no legal move, not in check.
	stalematePosition = `
--------wK------
----------------
----------------
----------------
----------------
--wQ------------
----------------
bK--------------
`
)

func TestStartingPosition(t *testing.T) {
	v := NewValidator()
	rights := CastlingState{Left: true, Right: true}
	ctx := Context{Turn: White, Grid: StandardGrid(), Castling: &rights}

	assert.Equal(t, MoveTurn, v.TurnState(ctx))
	assert.False(t, v.KingAttacked(ctx))

	total := 0
	for _, p := range ctx.Grid.Pieces(White) {
		total += len(v.LegalDestinations(ctx, p.Coordinate))
	}
	assert.Equal(t, 20, total)

	assert.Equal(t, []Coordinate{sq("a3"), sq("c3")}, v.LegalDestinations(ctx, sq("b1")))
	assert.Empty(t, v.LegalDestinations(ctx, sq("a1")))
	assert.Empty(t, v.LegalDestinations(ctx, sq("e7")), "not black's turn")
}

func TestClassifyBasics(t *testing.T) {
	v := NewValidator()
	ctx := contextFor(StandardGrid(), White)

	tests := []struct {
		name     string
		from, to string
		want     Classification
	}{
		{"same square", "e2", "e2", InvalidMove},
		{"empty origin", "e4", "e5", InvalidMove},
		{"wrong side", "e7", "e5", InvalidMove},
		{"own piece on target", "a1", "a2", InvalidMove},
		{"pawn single", "e2", "e3", ValidMove},
		{"pawn double", "e2", "e4", ValidMove},
		{"pawn triple", "e2", "e5", InvalidMove},
		{"pawn diagonal onto empty square", "e2", "d3", NeedsLastMove},
		{"knight", "g1", "f3", ValidMove},
		{"knight bad shape", "g1", "g3", InvalidMove},
		{"blocked bishop", "c1", "e3", InvalidMove},
		{"king two squares onto own knight", "e1", "g1", InvalidMove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Classify(ctx, sq(tt.from), sq(tt.to)))
		})
	}
}

func TestClassifySlidingGeometry(t *testing.T) {
	g := mustGrid(t, `
----wB--wK------
----------------
----------------
----------------
----------------
----------------
----------------
--------bK------
`)
	v := NewValidator()
	ctx := contextFor(g, White)

	assert.Equal(t, ValidMove, v.Classify(ctx, sq("c1"), sq("h6")))
	assert.Equal(t, InvalidMove, v.Classify(ctx, sq("c1"), sq("e2")), "not a diagonal multiple")
	assert.Equal(t, InvalidMove, v.Classify(ctx, sq("c1"), sq("c4")), "bishop cannot move straight")

	g.Set(sq("e3"), NewPiece(Pawn, Black, Coordinate{}))
	assert.Equal(t, ValidMove, v.Classify(ctx, sq("c1"), sq("e3")), "capture at the end of the path")
	assert.Equal(t, InvalidMove, v.Classify(ctx, sq("c1"), sq("f4")), "path blocked")
}

func TestPawnDoubleMoveOnlyFromStartRow(t *testing.T) {
	g := mustGrid(t, `
--------wK------
----------------
----wP----------
----------------
----------------
----------------
----------------
--------bK------
`)
	v := NewValidator()
	ctx := contextFor(g, White)
	assert.Equal(t, ValidMove, v.Classify(ctx, sq("c3"), sq("c4")))
	assert.Equal(t, InvalidMove, v.Classify(ctx, sq("c3"), sq("c5")))
}

func TestColourMirrorSymmetry(t *testing.T) {
	g := mustGrid(t, `
wR----wQwK--wN--
wP----wP----wPwP
----wN----------
--------bB------
------wB--wR----
----bN----------
bP--------bPbP--
bR----bQbK----bR
`)
	m := mirror(g)
	v := NewValidator()
	ctx := contextFor(g, White)
	mctx := contextFor(m, Black)

	for _, p := range g.Pieces(White) {
		if p.Type == Pawn || p.Type == King {
			continue
		}
		for r := 0; r < BoardSize; r++ {
			for c := 0; c < BoardSize; c++ {
				dest := Coordinate{Row: r, Column: c}
				want := v.Classify(ctx, p.Coordinate, dest)
				got := v.Classify(mctx, mirrorSquare(p.Coordinate), mirrorSquare(dest))
				require.Equal(t, want, got, "%v -> %v", p, dest)
			}
		}
	}
}

func TestPinnedPieceCannotExposeKing(t *testing.T) {
	v := NewValidator()
	ctx := contextFor(mustGrid(t, pinnedBishopPosition), White)

	assert.Equal(t, InvalidMove, v.Classify(ctx, sq("e2"), sq("d3")))
	assert.Equal(t, InvalidMove, v.Classify(ctx, sq("e2"), sq("f3")))
	assert.Empty(t, v.LegalDestinations(ctx, sq("e2")))

	// A rook pinned on the same line may slide along it.
	ctx.Grid.Set(sq("e2"), NewPiece(Rook, White, Coordinate{}))
	assert.Equal(t, ValidMove, v.Classify(ctx, sq("e2"), sq("e5")))
	assert.Equal(t, ValidMove, v.Classify(ctx, sq("e2"), sq("e8")))
	assert.Equal(t, InvalidMove, v.Classify(ctx, sq("e2"), sq("d2")))
}

func TestKingCannotStepIntoAttack(t *testing.T) {
	g := mustGrid(t, `
----------------
----------------
----------------
--------wK------
----------------
--------bK------
----------------
----------------
`)
	v := NewValidator()
	ctx := contextFor(g, White)
	assert.Equal(t, InvalidMove, v.Classify(ctx, sq("e4"), sq("e5")))
	assert.Equal(t, InvalidMove, v.Classify(ctx, sq("e4"), sq("d5")))
	assert.Equal(t, ValidMove, v.Classify(ctx, sq("e4"), sq("e3")))
}

func TestSimulationDepthIsBounded(t *testing.T) {
	g := mustGrid(t, pinnedBishopPosition)
	ctx := contextFor(g, White)

	top := newSession(ctx, 0, false)
	assert.Equal(t, InvalidMove, top.classify(sq("e2"), sq("d3")))
	assert.Equal(t, 1, top.simulations)

	bounded := newSession(ctx, maxSimulationDepth, false)
	assert.Equal(t, ValidMove, bounded.classify(sq("e2"), sq("d3")))
	assert.Zero(t, bounded.simulations)
}

func TestPinnedPieceStillGivesCheck(t *testing.T) {
	v := NewValidator()
	ctx := contextFor(mustGrid(t, pinnedCheckerPosition), Black)

	assert.True(t, v.KingAttacked(ctx))
	assert.True(t, v.IsAttacked(ctx, sq("c5")))
	assert.False(t, v.IsAttacked(ctx, sq("b8")))
	assert.Equal(t, Check, v.TurnState(ctx))
}

func TestPawnsAttackEmptyDiagonals(t *testing.T) {
	g := mustGrid(t, `
--------wK------
----------------
----------------
----------------
--------bP------
----------------
----------------
bK--------------
`)
	v := NewValidator()
	ctx := contextFor(g, White)
	assert.True(t, v.IsAttacked(ctx, sq("d4")))
	assert.True(t, v.IsAttacked(ctx, sq("f4")))
	assert.False(t, v.IsAttacked(ctx, sq("e4")), "pawns do not attack straight ahead")
	assert.False(t, v.IsAttacked(ctx, sq("e3")))
}

func TestTurnStateFixtures(t *testing.T) {
	v := NewValidator()

	mate := mustGrid(t, backRankPosition)
	mate.Swap(sq("a1"), sq("a8"))
	assert.Equal(t, Checkmate, v.TurnState(contextFor(mate, Black)))

	assert.Equal(t, Stalemate, v.TurnState(contextFor(mustGrid(t, stalematePosition), Black)))
	assert.Equal(t, MoveTurn, v.TurnState(contextFor(mustGrid(t, backRankPosition), White)))
}

func TestTurnStateIsIdempotent(t *testing.T) {
	v := NewValidator()
	for _, text := range []string{StandardPosition, backRankPosition, stalematePosition, pinnedCheckerPosition} {
		for _, turn := range []Color{White, Black} {
			ctx := contextFor(mustGrid(t, text), turn)
			first := v.TurnState(ctx)
			for i := 0; i < 3; i++ {
				assert.Equal(t, first, v.TurnState(ctx))
			}
		}
	}
}

func TestSessionCacheReusesResults(t *testing.T) {
	ctx := contextFor(mustGrid(t, pinnedBishopPosition), White)
	s := newSession(ctx, 0, false)

	first := s.classify(sq("e2"), sq("d3"))
	second := s.classify(sq("e2"), sq("d3"))
	assert.Equal(t, first, second)
	assert.Equal(t, 1, s.simulations, "second lookup must come from the cache")
	assert.Len(t, s.cache, 1)
}

func TestEnPassantNeedsImmediateDoubleMove(t *testing.T) {
	g := mustGrid(t, `
--------wK------
----------------
----------------
----------------
--------wPbP----
----------------
----------------
--------bK------
`)
	v := NewValidator()
	double := &Movement{Piece: Piece{Type: Pawn, Color: Black, Coordinate: sq("f7")}, Destination: sq("f5")}
	single := &Movement{Piece: Piece{Type: Pawn, Color: Black, Coordinate: sq("f6")}, Destination: sq("f5")}

	ctx := contextFor(g, White)
	ctx.LastMove = double
	verdict := v.Check(ctx, sq("e5"), sq("f6"))
	require.True(t, verdict.Legal)
	require.NotNil(t, verdict.EnPassant)
	assert.Equal(t, sq("f5"), *verdict.EnPassant)
	assert.False(t, v.Check(ctx, sq("e5"), sq("d6")).Legal, "wrong file")

	ctx.LastMove = single
	assert.False(t, v.Check(ctx, sq("e5"), sq("f6")).Legal)

	ctx.LastMove = nil
	assert.False(t, v.Check(ctx, sq("e5"), sq("f6")).Legal)
}

func TestEnPassantCannotExposeKing(t *testing.T) {
	// Removing both pawns from rank 5 would open the rook onto the king.
	g := mustGrid(t, `
----------------
----------------
----------------
----------------
wK------wPbP--bR
----------------
----------------
--------bK------
`)
	v := NewValidator()
	ctx := contextFor(g, White)
	ctx.LastMove = &Movement{Piece: Piece{Type: Pawn, Color: Black, Coordinate: sq("f7")}, Destination: sq("f5")}

	assert.Equal(t, NeedsLastMove, v.Classify(ctx, sq("e5"), sq("f6")))
	assert.False(t, v.Check(ctx, sq("e5"), sq("f6")).Legal)
}

func TestOnlyLegalMoveIsEnPassant(t *testing.T) {
	// The white king on a4 is checked by the pawn that just arrived on b5;
	// every flight square is covered and only axb6 e.p. removes the checker.
	g := mustGrid(t, `
----------------
----------------
------bQ--------
wK--------------
wPbP--bN--------
----------------
----------------
--------bK------
`)
	v := NewValidator()
	ctx := contextFor(g, White)
	ctx.LastMove = &Movement{Piece: Piece{Type: Pawn, Color: Black, Coordinate: sq("b7")}, Destination: sq("b5")}
	assert.Equal(t, Check, v.TurnState(ctx))
	assert.Equal(t, []Coordinate{sq("b6")}, v.LegalDestinations(ctx, sq("a5")))

	ctx.LastMove = nil
	assert.Equal(t, Checkmate, v.TurnState(ctx))
}

func TestCastlingRules(t *testing.T) {
	const base = `
wR------wK----wR
----------------
----------------
----------------
----------------
----------------
----------------
--bK------------
`
	all := CastlingState{Left: true, Right: true}

	tests := []struct {
		name        string
		extra       map[string]*Piece
		rights      CastlingState
		left, right bool
	}{
		{name: "both flanks open", rights: all, left: true, right: true},
		{name: "no rights", rights: CastlingState{}},
		{name: "right flank only", rights: CastlingState{Right: true}, right: true},
		{
			name:   "transit square attacked",
			extra:  map[string]*Piece{"f8": NewPiece(Rook, Black, Coordinate{})},
			rights: all, left: true,
		},
		{
			name:   "destination attacked",
			extra:  map[string]*Piece{"c8": NewPiece(Rook, Black, Coordinate{})},
			rights: all, right: true,
		},
		{
			name:   "b-file attack does not matter",
			extra:  map[string]*Piece{"b6": NewPiece(Rook, Black, Coordinate{})},
			rights: all, left: true, right: true,
		},
		{
			name:   "king in check",
			extra:  map[string]*Piece{"e6": NewPiece(Rook, Black, Coordinate{})},
			rights: all,
		},
		{
			name:   "pawn covers both transit squares",
			extra:  map[string]*Piece{"e2": NewPiece(Pawn, Black, Coordinate{})},
			rights: all,
		},
		{
			name:   "path obstructed",
			extra:  map[string]*Piece{"b1": NewPiece(Knight, White, Coordinate{}), "g1": NewPiece(Knight, Black, Coordinate{})},
			rights: all,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrid(t, base)
			for at, p := range tt.extra {
				g.Set(sq(at), p)
			}
			rights := tt.rights
			ctx := Context{Turn: White, Grid: g, Castling: &rights}
			v := NewValidator()

			left := v.Check(ctx, sq("e1"), sq("c1"))
			right := v.Check(ctx, sq("e1"), sq("g1"))
			assert.Equal(t, tt.left, left.Legal, "left")
			assert.Equal(t, tt.right, right.Legal, "right")

			if right.Legal {
				assert.Equal(t, &CastleRookMove{From: sq("h1"), To: sq("f1")}, right.Castle)
				assert.Equal(t, CastlingState{}, right.Castling)
			}
			if left.Legal {
				assert.Equal(t, &CastleRookMove{From: sq("a1"), To: sq("d1")}, left.Castle)
				assert.Equal(t, CastlingState{}, left.Castling)
			}
		})
	}
}

func TestCastlingRightsAfterMoves(t *testing.T) {
	g := mustGrid(t, `
wR------wK----wR
----------------
----------------
----------------
----------------
----------------
----------------
bR------bK----bR
`)
	v := NewValidator()
	all := CastlingState{Left: true, Right: true}
	ctx := Context{Turn: White, Grid: g, Castling: &all}

	rook := v.Check(ctx, sq("a1"), sq("a4"))
	assert.Equal(t, CastlingState{Right: true}, rook.Castling)
	assert.Equal(t, CastlingState{}, rook.OpponentLost)

	capture := v.Check(ctx, sq("h1"), sq("h8"))
	assert.Equal(t, CastlingState{Left: true}, capture.Castling)
	assert.Equal(t, CastlingState{Right: true}, capture.OpponentLost)

	king := v.Check(ctx, sq("e1"), sq("e2"))
	assert.Equal(t, CastlingState{}, king.Castling)
}

func TestPromotionClassification(t *testing.T) {
	g := mustGrid(t, `
--------wK------
----------------
----------------
----------------
----------------
----------------
----wP----------
--bN----------bK
`)
	v := NewValidator()
	ctx := contextFor(g, White)
	assert.Equal(t, NeedsPromotionChoice, v.Classify(ctx, sq("c7"), sq("c8")))
	assert.Equal(t, NeedsPromotionChoice, v.Classify(ctx, sq("c7"), sq("b8")))

	verdict := v.Check(ctx, sq("c7"), sq("c8"))
	assert.True(t, verdict.Legal)
	assert.True(t, verdict.NeedsPromotion)

	for _, pt := range []PieceType{Queen, Rook, Bishop, Knight} {
		assert.True(t, ValidPromotion(pt), string(pt))
	}
	for _, pt := range []PieceType{Pawn, King, PieceType("dragon")} {
		assert.False(t, ValidPromotion(pt), string(pt))
	}
}

func TestChecksOpponentKing(t *testing.T) {
	g := mustGrid(t, `
wR------wK------
----------------
----------------
----------------
----------------
----------------
----------------
bK--------------
`)
	v := NewValidator()
	ctx := contextFor(g, White)
	assert.Equal(t, ChecksOpponentKing, v.Classify(ctx, sq("a1"), sq("a8")))
	assert.False(t, v.Check(ctx, sq("a1"), sq("a8")).Legal)
}
