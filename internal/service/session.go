package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

// Session is one hosted game and its observers.
type Session struct {
	ID          string
	CreatedAt   time.Time
	mu          sync.Mutex
	game        *model.Game
	connections *GameConnections
}

func newSession(id string, game *model.Game) *Session {
	return &Session{
		ID:          id,
		CreatedAt:   time.Now(),
		game:        game,
		connections: NewGameConnections(),
	}
}

// View returns a snapshot of the game.
func (s *Session) View() GameView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newGameView(s.ID, s.game)
}

// Move plays from -> to, promoting to promotion when it is not empty. On
// success the new state is broadcast to every observer.
func (s *Session) Move(from, to model.Coordinate, promotion model.PieceType) (model.MoveStatus, GameView, error) {
	s.mu.Lock()
	var status model.MoveStatus
	if promotion != "" {
		status = s.game.AttemptPromotion(from, to, promotion)
	} else {
		status = s.game.AttemptMove(from, to)
	}
	view := newGameView(s.ID, s.game)
	s.mu.Unlock()

	switch status {
	case model.Performed:
		s.connections.Broadcast(ws.MessageTypeGameState, view)
		return status, view, nil
	case model.GameEnded:
		return status, view, fmt.Errorf("%w: %s", ErrGameOver, view.GameState)
	case model.RequirePromotion:
		return status, view, fmt.Errorf("%w: %s-%s", ErrPromotionRequired, from, to)
	}
	return status, view, fmt.Errorf("%w: %s-%s", ErrIllegalMove, from, to)
}

// LegalDestinations lists the squares the piece on from may move to.
func (s *Session) LegalDestinations(from model.Coordinate) []model.Coordinate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.LegalDestinations(from)
}

// Grid returns a copy of the board together with the last move, if any.
func (s *Session) Grid() (*model.Grid, *model.Movement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.game.Data()
	return s.game.Grid(), data.LastMove()
}

// Connect registers an observer and sends it the current state.
func (s *Session) Connect(clientID string, conn Conn) error {
	if err := s.connections.Register(clientID, conn); err != nil {
		return err
	}
	return s.connections.Send(conn, ws.MessageTypeGameState, s.View())
}

func (s *Session) Disconnect(clientID string, conn Conn) {
	s.connections.Unregister(clientID, conn)
}

// Observers returns the number of connected observers.
func (s *Session) Observers() int {
	return s.connections.Len()
}

func (s *Session) close() {
	s.connections.CloseAll("game removed")
}
