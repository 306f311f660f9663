package service

import (
	"bytes"
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/render"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (GameView, error) {
	session, err := gs.gameManager.CreateGame()
	if err != nil {
		return GameView{}, fmt.Errorf("failed to create game: %w", err)
	}
	return session.View(), nil
}

// ImportGame hosts a game from board text and game data as produced by a
// GameView.
func (gs *GameService) ImportGame(board string, data model.GameData) (GameView, error) {
	session, err := gs.gameManager.ImportGame(board, data)
	if err != nil {
		return GameView{}, err
	}
	return session.View(), nil
}

func (gs *GameService) GetGameState(gameID string) (GameView, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return GameView{}, err
	}
	return session.View(), nil
}

func (gs *GameService) ListGames() []string {
	return gs.gameManager.ListGames()
}

func (gs *GameService) RemoveGame(gameID string) error {
	return gs.gameManager.RemoveGame(gameID)
}

// HandleMove parses and plays a move. The returned status is the engine's
// answer even when err is set.
func (gs *GameService) HandleMove(gameID string, move ws.MovePayload) (model.MoveStatus, GameView, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", GameView{}, err
	}
	from, err := model.ParseCoordinate(move.From)
	if err != nil {
		return model.Invalid, GameView{}, fmt.Errorf("%w: from: %w", ErrInvalidRequest, err)
	}
	to, err := model.ParseCoordinate(move.To)
	if err != nil {
		return model.Invalid, GameView{}, fmt.Errorf("%w: to: %w", ErrInvalidRequest, err)
	}
	var promotion model.PieceType
	if move.Promotion != "" {
		if promotion, err = model.ParsePieceType(move.Promotion); err != nil {
			return model.Invalid, GameView{}, fmt.Errorf("%w: promotion: %w", ErrInvalidRequest, err)
		}
	}
	return session.Move(from, to, promotion)
}

// LegalMoves lists the destinations, as square names, of the piece on
// square.
func (gs *GameService) LegalMoves(gameID, square string) ([]string, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	from, err := model.ParseCoordinate(square)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	dests := session.LegalDestinations(from)
	names := make([]string, 0, len(dests))
	for _, d := range dests {
		names = append(names, d.String())
	}
	return names, nil
}

// RenderBoard draws the current position as SVG, highlighting the last
// move.
func (gs *GameService) RenderBoard(gameID string, flip bool) ([]byte, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	grid, last := session.Grid()
	opts := render.Options{Flip: flip}
	if last != nil {
		opts.Highlights = []model.Coordinate{last.Origin(), last.Destination}
	}
	var buf bytes.Buffer
	render.Board(&buf, grid, opts)
	return buf.Bytes(), nil
}

func (gs *GameService) RegisterConnection(gameID string, clientID string, conn Conn) error {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.Connect(clientID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, clientID string, conn Conn) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	session.Disconnect(clientID, conn)
}
