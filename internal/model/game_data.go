package model

// GameState is the outcome of the whole game.
type GameState string

const (
	Pending  GameState = "pending"
	WhiteWin GameState = "white_win"
	BlackWin GameState = "black_win"
	Tie      GameState = "tie"
)

// TurnState is the status of the side about to move.
type TurnState string

const (
	MoveTurn  TurnState = "move_turn"
	Check     TurnState = "check"
	Checkmate TurnState = "checkmate"
	Stalemate TurnState = "stalemate"
)

func (s TurnState) Terminal() bool {
	return s == Checkmate || s == Stalemate
}

// CastlingState holds one side's castling rights. Left is the flank toward
// column 0, Right the flank toward column 7. Flags only ever go from true
// to false.
type CastlingState struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

// spend clears the flags set in lost. It never re-enables a flag.
func (s CastlingState) spend(lost CastlingState) CastlingState {
	return CastlingState{Left: s.Left && !lost.Left, Right: s.Right && !lost.Right}
}

// GameData is the persistent record of a game: outcome, side to move,
// castling rights and the ordered move history.
type GameData struct {
	State         GameState     `json:"state"`
	Turn          Color         `json:"turn"`
	WhiteCastling CastlingState `json:"whiteCastling"`
	BlackCastling CastlingState `json:"blackCastling"`
	History       []Movement    `json:"history"`
}

func NewGameData() GameData {
	return GameData{
		State:         Pending,
		Turn:          White,
		WhiteCastling: CastlingState{Left: true, Right: true},
		BlackCastling: CastlingState{Left: true, Right: true},
		History:       make([]Movement, 0),
	}
}

func (d *GameData) Castling(color Color) CastlingState {
	if color == White {
		return d.WhiteCastling
	}
	return d.BlackCastling
}

func (d *GameData) setCastling(color Color, s CastlingState) {
	if color == White {
		d.WhiteCastling = s
	} else {
		d.BlackCastling = s
	}
}

// LastMove returns the most recent movement, or nil before the first ply.
func (d *GameData) LastMove() *Movement {
	if len(d.History) == 0 {
		return nil
	}
	m := d.History[len(d.History)-1]
	return &m
}

func (d GameData) clone() GameData {
	cp := d
	cp.History = append(make([]Movement, 0, len(d.History)), d.History...)
	return cp
}
