package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	clientID, _ := c.Locals(middleware.ClientIDKey).(string)

	if err := wsc.gameService.RegisterConnection(gameID, clientID, c); err != nil {
		log.Printf("failed to register connection for game %s: %v", gameID, err)
		if !errors.Is(err, service.ErrConnectionExists) {
			wsc.gameService.UnregisterConnection(gameID, clientID, c)
			wsc.sendError(c, err, "")
			c.Close()
		}
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, clientID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("read error: %v", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(c, fmt.Errorf("%w: %v", service.ErrInvalidRequest, err), "")
			continue
		}
		if status, err := wsc.handleMessage(gameID, msg); err != nil {
			wsc.sendError(c, err, status)
		}
	}
}

// Handle different types of incoming messages. Successful moves reach the
// client through the session broadcast.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) (model.MoveStatus, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return model.Invalid, fmt.Errorf("%w: %v", service.ErrInvalidRequest, err)
		}
		status, _, err := wsc.gameService.HandleMove(gameID, move)
		return status, err
	default:
		return "", fmt.Errorf("%w: unknown message type %q", service.ErrInvalidRequest, msg.Type)
	}
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, err error, status model.MoveStatus) {
	payload, _ := json.Marshal(ws.ErrorPayload{Error: err.Error(), Status: string(status)})
	if err := c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: payload,
	}); err != nil {
		log.Printf("failed to send error: %v", err)
	}
}
