package service

import "github.com/benbeisheim/chessrules-backend/internal/model"

// GameView is the read-only picture of a session sent to clients.
type GameView struct {
	ID        string                              `json:"id"`
	Board     string                              `json:"board"`
	Squares   [][]*model.Piece                    `json:"squares"`
	Turn      model.Color                         `json:"turn"`
	TurnState model.TurnState                     `json:"turnState"`
	GameState model.GameState                     `json:"gameState"`
	Castling  map[model.Color]model.CastlingState `json:"castling"`
	Moves     []MoveView                          `json:"moves"`
	LastMove  *MoveView                           `json:"lastMove"`

	// Data can be posted back to the import endpoint together with Board.
	Data model.GameData `json:"data"`
}

// MoveView is one entry of the move log.
type MoveView struct {
	Ply       int             `json:"ply"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Notation  string          `json:"notation"`
	Promotion model.PieceType `json:"promotion,omitempty"`
}

func newGameView(id string, game *model.Game) GameView {
	grid := game.Grid()
	data := game.Data()

	squares := make([][]*model.Piece, model.BoardSize)
	for r := range squares {
		squares[r] = make([]*model.Piece, model.BoardSize)
		for c := range squares[r] {
			squares[r][c] = grid.Get(model.Coordinate{Row: r, Column: c})
		}
	}

	moves := make([]MoveView, 0, len(data.History))
	for i, m := range data.History {
		moves = append(moves, MoveView{
			Ply:       i + 1,
			From:      m.Origin().String(),
			To:        m.Destination.String(),
			Notation:  m.Notation(),
			Promotion: m.Promotion,
		})
	}
	var last *MoveView
	if len(moves) > 0 {
		last = &moves[len(moves)-1]
	}

	return GameView{
		ID:        id,
		Board:     grid.String(),
		Squares:   squares,
		Turn:      data.Turn,
		TurnState: game.TurnState(),
		GameState: data.State,
		Castling: map[model.Color]model.CastlingState{
			model.White: data.WhiteCastling,
			model.Black: data.BlackCastling,
		},
		Moves:    moves,
		LastMove: last,
		Data:     data,
	}
}
