package controller

import (
	"github.com/benbeisheim/chessrules-backend/internal/config"
	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the REST API and the websocket feed on app.
func RegisterRoutes(app *fiber.App, cfg config.Config, gc *GameController, wsc *WebSocketController) {
	app.Use("/ws/*", middleware.EnsureClientID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(wsc.HandleConnection, websocket.Config{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		Origins:         cfg.Origins(),
	}))

	api := app.Group("/api", middleware.EnsureClientID())
	api.Get("/games", gc.ListGames)

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gc.CreateGame)
	gameRoutes.Post("/import", gc.ImportGame)
	gameRoutes.Get("/:gameId", gc.GetGameState)
	gameRoutes.Delete("/:gameId", gc.DeleteGame)
	gameRoutes.Post("/:gameId/move", gc.MakeMove)
	gameRoutes.Get("/:gameId/moves/:square", gc.LegalMoves)
	gameRoutes.Get("/:gameId/board.svg", gc.BoardSVG)
}
