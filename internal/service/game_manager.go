// service/game_manager.go
package service

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/google/uuid"
	"golang.org/x/exp/maps"
)

// GameManager owns every hosted session.
type GameManager struct {
	games    map[string]*Session
	maxGames int
	mu       sync.RWMutex
}

// NewGameManager creates a manager holding at most maxGames sessions; zero
// or less means no limit.
func NewGameManager(maxGames int) *GameManager {
	return &GameManager{
		games:    make(map[string]*Session),
		maxGames: maxGames,
	}
}

// CreateGame hosts a new game from the standard position.
func (gm *GameManager) CreateGame() (*Session, error) {
	return gm.add(model.NewGame())
}

// ImportGame hosts a game restored from board text and game data.
func (gm *GameManager) ImportGame(board string, data model.GameData) (*Session, error) {
	grid, err := model.ParseGrid(board)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	game, err := model.NewGameFromPosition(grid, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return gm.add(game)
}

func (gm *GameManager) add(game *model.Game) (*Session, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if gm.maxGames > 0 && len(gm.games) >= gm.maxGames {
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManyGames, gm.maxGames)
	}
	session := newSession(uuid.New().String(), game)
	gm.games[session.ID] = session
	log.Printf("created game %s", session.ID)
	return session, nil
}

func (gm *GameManager) GetGame(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return session, nil
}

// RemoveGame drops a session and closes its observers.
func (gm *GameManager) RemoveGame(gameID string) error {
	gm.mu.Lock()
	session, exists := gm.games[gameID]
	delete(gm.games, gameID)
	gm.mu.Unlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	session.close()
	log.Printf("removed game %s", gameID)
	return nil
}

// ListGames returns the hosted game IDs in sorted order.
func (gm *GameManager) ListGames() []string {
	gm.mu.RLock()
	snapshot := maps.Clone(gm.games)
	gm.mu.RUnlock()

	ids := make([]string, 0, len(snapshot))
	for id := range snapshot {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
