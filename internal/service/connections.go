package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/exp/maps"
)

var ErrConnectionExists = errors.New("connection already exists")

// Conn is the part of a websocket connection a session writes to.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// GameConnections holds the observers of one game, keyed by client ID.
type GameConnections struct {
	connections map[string]Conn
	mu          sync.RWMutex
	// writeMu serializes writes; a websocket allows one writer at a time.
	writeMu sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Register adds conn for clientID. A client that already has a live
// connection keeps it and the new one is closed.
func (gc *GameConnections) Register(clientID string, conn Conn) error {
	gc.mu.Lock()
	if _, exists := gc.connections[clientID]; exists {
		gc.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, ErrConnectionExists.Error()),
		)
		conn.Close()
		return ErrConnectionExists
	}
	gc.connections[clientID] = conn
	gc.mu.Unlock()
	log.Printf("registered connection for client %s", clientID)
	return nil
}

// Unregister removes conn if it is still the connection on record for
// clientID.
func (gc *GameConnections) Unregister(clientID string, conn Conn) {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	if current, exists := gc.connections[clientID]; exists && current == conn {
		delete(gc.connections, clientID)
		log.Printf("unregistered connection for client %s", clientID)
	}
}

func (gc *GameConnections) Len() int {
	gc.mu.RLock()
	defer gc.mu.RUnlock()
	return len(gc.connections)
}

// Send writes a message to a single connection.
func (gc *GameConnections) Send(conn Conn, msgType ws.MessageType, payload interface{}) error {
	msg, err := newMessage(msgType, payload)
	if err != nil {
		return err
	}
	gc.writeMu.Lock()
	defer gc.writeMu.Unlock()
	return conn.WriteJSON(msg)
}

// Broadcast writes a message to every connection. Connections that fail
// are dropped.
func (gc *GameConnections) Broadcast(msgType ws.MessageType, payload interface{}) {
	msg, err := newMessage(msgType, payload)
	if err != nil {
		log.Printf("failed to marshal %s message: %v", msgType, err)
		return
	}

	gc.mu.RLock()
	active := maps.Clone(gc.connections)
	gc.mu.RUnlock()

	gc.writeMu.Lock()
	var failed []string
	for clientID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("failed to send %s to client %s: %v", msgType, clientID, err)
			failed = append(failed, clientID)
		}
	}
	gc.writeMu.Unlock()

	for _, clientID := range failed {
		gc.Unregister(clientID, active[clientID])
	}
}

// CloseAll closes every connection and empties the registry.
func (gc *GameConnections) CloseAll(reason string) {
	gc.mu.Lock()
	active := gc.connections
	gc.connections = make(map[string]Conn)
	gc.mu.Unlock()

	gc.writeMu.Lock()
	defer gc.writeMu.Unlock()
	for _, conn := range active {
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, reason),
		)
		conn.Close()
	}
}

func newMessage(msgType ws.MessageType, payload interface{}) (ws.Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return ws.Message{}, err
	}
	return ws.Message{Type: msgType, Payload: json.RawMessage(raw)}, nil
}
