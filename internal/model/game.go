package model

import "fmt"

// MoveStatus is the outcome of a move request.
type MoveStatus string

const (
	Performed        MoveStatus = "performed"
	GameEnded        MoveStatus = "game_ended"
	Invalid          MoveStatus = "invalid"
	RequirePromotion MoveStatus = "require_promotion"
)

// Game drives a single game: it owns the grid and the game data, asks the
// validator about each request and applies accepted moves.
//
// A Game is not safe for concurrent use.
type Game struct {
	grid      *Grid
	data      GameData
	validator *Validator
	turnState TurnState
}

// NewGame starts a game from the standard position.
func NewGame() *Game {
	g := &Game{
		grid:      StandardGrid(),
		data:      NewGameData(),
		validator: NewValidator(),
	}
	g.turnState = g.validator.TurnState(g.context())
	return g
}

// NewGameFromPosition restores a game from a deserialized grid and game
// data. With an empty history the grid is treated as a custom setup; with
// a non-empty history the moves are replayed from the standard position
// and must reproduce the grid, the turn and the castling rights.
func NewGameFromPosition(grid *Grid, data GameData) (*Game, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidGrid)
	}
	if err := ValidateGrid(grid); err != nil {
		return nil, err
	}
	if data.Turn != White && data.Turn != Black {
		return nil, fmt.Errorf("%w: unknown turn %q", ErrInconsistentHistory, data.Turn)
	}

	var g *Game
	if len(data.History) == 0 {
		if err := checkCastlingPieces(grid, data); err != nil {
			return nil, err
		}
		g = &Game{
			grid:      grid.Copy(),
			data:      data.clone(),
			validator: NewValidator(),
		}
		g.data.State = Pending
		g.turnState = g.validator.TurnState(g.context())
		g.settle()
	} else {
		var err error
		if g, err = replay(data.History); err != nil {
			return nil, err
		}
		if !g.grid.Equal(grid) {
			return nil, fmt.Errorf("%w: replayed grid differs from stored grid", ErrInconsistentHistory)
		}
		if g.data.Turn != data.Turn {
			return nil, fmt.Errorf("%w: stored turn %s, replay gives %s", ErrInconsistentHistory, data.Turn, g.data.Turn)
		}
		if g.data.WhiteCastling != data.WhiteCastling || g.data.BlackCastling != data.BlackCastling {
			return nil, fmt.Errorf("%w: castling rights do not match the history", ErrInconsistentHistory)
		}
	}

	if data.State != "" && data.State != g.data.State {
		return nil, fmt.Errorf("%w: stored state %s, position gives %s", ErrInconsistentHistory, data.State, g.data.State)
	}
	return g, nil
}

func replay(history []Movement) (*Game, error) {
	g := NewGame()
	for i, m := range history {
		var status MoveStatus
		if m.Promotion != "" {
			status = g.AttemptPromotion(m.Origin(), m.Destination, m.Promotion)
		} else {
			status = g.AttemptMove(m.Origin(), m.Destination)
		}
		if status != Performed {
			return nil, fmt.Errorf("%w: ply %d (%s %s-%s): %s", ErrInconsistentHistory, i+1, m.Piece.Type, m.Origin(), m.Destination, status)
		}
		if played := g.data.History[i]; !played.SameAs(m) {
			return nil, fmt.Errorf("%w: ply %d does not match the replayed move", ErrInconsistentHistory, i+1)
		}
	}
	return g, nil
}

// checkCastlingPieces rejects castling rights for a flank whose king or
// rook is not on its home square.
func checkCastlingPieces(grid *Grid, data GameData) error {
	for _, color := range []Color{White, Black} {
		rights := data.Castling(color)
		row := color.homeRow()
		hasPiece := func(t PieceType, column int) bool {
			p := grid.Get(Coordinate{Row: row, Column: column})
			return p != nil && p.Type == t && p.Color == color
		}
		if (rights.Left || rights.Right) && !hasPiece(King, kingHomeColumn) {
			return fmt.Errorf("%w: %s may castle but its king has left home", ErrInconsistentHistory, color)
		}
		if rights.Left && !hasPiece(Rook, 0) {
			return fmt.Errorf("%w: %s may castle left without a rook in the corner", ErrInconsistentHistory, color)
		}
		if rights.Right && !hasPiece(Rook, BoardSize-1) {
			return fmt.Errorf("%w: %s may castle right without a rook in the corner", ErrInconsistentHistory, color)
		}
	}
	return nil
}

func (g *Game) context() Context {
	rights := g.data.Castling(g.data.Turn)
	return Context{
		Turn:     g.data.Turn,
		Grid:     g.grid,
		LastMove: g.data.LastMove(),
		Castling: &rights,
	}
}

// AttemptMove plays origin -> destination if it is legal.
func (g *Game) AttemptMove(origin, destination Coordinate) MoveStatus {
	return g.attempt(origin, destination, "")
}

// AttemptPromotion plays a pawn move to the last rank, replacing the pawn
// with a new piece of the chosen type.
func (g *Game) AttemptPromotion(origin, destination Coordinate, promotion PieceType) MoveStatus {
	if g.data.State != Pending {
		return GameEnded
	}
	if !ValidPromotion(promotion) {
		return Invalid
	}
	return g.attempt(origin, destination, promotion)
}

func (g *Game) attempt(origin, destination Coordinate, promotion PieceType) MoveStatus {
	if g.data.State != Pending {
		return GameEnded
	}
	if !origin.Valid() || !destination.Valid() {
		return Invalid
	}
	verdict := g.validator.Check(g.context(), origin, destination)
	switch {
	case !verdict.Legal:
		return Invalid
	case verdict.NeedsPromotion && promotion == "":
		return RequirePromotion
	case !verdict.NeedsPromotion && promotion != "":
		return Invalid
	}
	g.apply(origin, destination, verdict, promotion)
	return Performed
}

// apply performs a validated move. Nothing here can fail, so a request
// either changes everything or nothing.
func (g *Game) apply(origin, destination Coordinate, verdict Verdict, promotion PieceType) {
	mover := g.grid.Get(origin)
	color := mover.Color
	m := Movement{
		Piece:       *mover,
		Destination: destination,
		Promotion:   promotion,
		Castle:      verdict.Castle,
	}

	var captured *Piece
	switch {
	case verdict.EnPassant != nil:
		captured = g.grid.Set(*verdict.EnPassant, nil)
		g.grid.Swap(origin, destination)
	case verdict.Castle != nil:
		g.grid.Swap(origin, destination)
		g.grid.Swap(verdict.Castle.From, verdict.Castle.To)
	case promotion != "":
		g.grid.Set(origin, nil)
		captured = g.grid.Set(destination, NewPiece(promotion, color, destination))
	default:
		captured = g.grid.Set(destination, nil)
		g.grid.Swap(origin, destination)
	}
	if captured != nil {
		m.Captured = captured.clone()
	}

	g.data.setCastling(color, verdict.Castling)
	g.data.setCastling(color.Opposite(), g.data.Castling(color.Opposite()).spend(verdict.OpponentLost))
	g.data.History = append(g.data.History, m)
	g.data.Turn = color.Opposite()

	g.turnState = g.validator.TurnState(g.context())
	last := &g.data.History[len(g.data.History)-1]
	last.Check = g.turnState == Check || g.turnState == Checkmate
	last.Mate = g.turnState == Checkmate
	g.settle()
}

// settle moves the game state to its terminal value once the turn state
// is terminal.
func (g *Game) settle() {
	switch g.turnState {
	case Checkmate:
		if g.data.Turn == White {
			g.data.State = BlackWin
		} else {
			g.data.State = WhiteWin
		}
	case Stalemate:
		g.data.State = Tie
	}
}

func (g *Game) TurnState() TurnState { return g.turnState }

func (g *Game) GameState() GameState { return g.data.State }

func (g *Game) Turn() Color { return g.data.Turn }

// Grid returns a copy of the current grid.
func (g *Game) Grid() *Grid { return g.grid.Copy() }

// PieceAt returns a copy of the piece on c.
func (g *Game) PieceAt(c Coordinate) (Piece, bool) {
	if !c.Valid() {
		return Piece{}, false
	}
	p := g.grid.Get(c)
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

// History returns a copy of the move history.
func (g *Game) History() []Movement {
	return g.data.clone().History
}

// Data returns a copy of the game data.
func (g *Game) Data() GameData {
	return g.data.clone()
}

// LegalDestinations lists where the piece on origin may move, empty when
// the game is over or origin does not hold a piece of the side to move.
func (g *Game) LegalDestinations(origin Coordinate) []Coordinate {
	if g.data.State != Pending {
		return []Coordinate{}
	}
	return g.validator.LegalDestinations(g.context(), origin)
}
