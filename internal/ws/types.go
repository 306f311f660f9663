package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages exchanged over a
// game socket
type MessageType string

const (
	// client -> server
	MessageTypeMove MessageType = "move"

	// server -> client
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message is the envelope of every websocket frame
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload is the payload of a move message. Squares use algebraic
// names ("e2"); Promotion is a piece name or letter and only needed when
// a pawn reaches the last rank.
type MovePayload struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// ErrorPayload is the payload of an error message
type ErrorPayload struct {
	Error  string `json:"error"`
	Status string `json:"status,omitempty"`
}
