package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// sq parses an algebraic square name and panics on error.
func sq(s string) Coordinate {
	c, err := ParseCoordinate(s)
	if err != nil {
		panic(err)
	}
	return c
}

// mustGrid parses board text written with row 0 (rank 1) on the first line.
func mustGrid(t *testing.T, text string) *Grid {
	t.Helper()
	g, err := ParseGrid(text)
	require.NoError(t, err)
	return g
}

func contextFor(g *Grid, turn Color) Context {
	return Context{Turn: turn, Grid: g, Castling: &CastlingState{}}
}

// gameFrom restores a game from a custom position with no castling rights.
func gameFrom(t *testing.T, text string, turn Color) *Game {
	t.Helper()
	data := NewGameData()
	data.Turn = turn
	data.WhiteCastling = CastlingState{}
	data.BlackCastling = CastlingState{}
	data.State = ""
	g, err := NewGameFromPosition(mustGrid(t, text), data)
	require.NoError(t, err)
	return g
}

// play performs each "e2e4" style move and requires it to succeed.
func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, mv := range moves {
		status := g.AttemptMove(sq(mv[:2]), sq(mv[2:4]))
		require.Equal(t, Performed, status, "move %s", mv)
	}
}

// mirror flips the grid top to bottom and swaps the colours.
func mirror(g *Grid) *Grid {
	m := NewGrid()
	for _, color := range []Color{White, Black} {
		for _, p := range g.Pieces(color) {
			m.Set(mirrorSquare(p.Coordinate), NewPiece(p.Type, color.Opposite(), Coordinate{}))
		}
	}
	return m
}

func mirrorSquare(c Coordinate) Coordinate {
	return Coordinate{Row: BoardSize - 1 - c.Row, Column: c.Column}
}
