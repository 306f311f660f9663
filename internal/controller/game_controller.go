package controller

import (
	"errors"
	"log"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// ImportRequest is the body of POST /api/game/import.
type ImportRequest struct {
	Board string         `json:"board"`
	Data  model.GameData `json:"data"`
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrGameOver):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrIllegalMove), errors.Is(err, service.ErrPromotionRequired):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrTooManyGames):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	view, err := gc.gameService.CreateGame()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": view.ID,
		"game":    view,
	})
}

func (gc *GameController) ImportGame(c *fiber.Ctx) error {
	var req ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	view, err := gc.gameService.ImportGame(req.Board, req.Data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game imported",
		"game_id": view.ID,
		"game":    view,
	})
}

func (gc *GameController) ListGames(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"games": gc.gameService.ListGames(),
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	view, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move ws.MovePayload
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	status, view, err := gc.gameService.HandleMove(c.Params("gameId"), move)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error":  err.Error(),
			"status": status,
		})
	}
	log.Printf("game %s: %s %s-%s", view.ID, view.LastMove.Notation, move.From, move.To)
	return c.JSON(fiber.Map{
		"status": status,
		"game":   view,
	})
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	dests, err := gc.gameService.LegalMoves(c.Params("gameId"), c.Params("square"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"destinations": dests,
	})
}

func (gc *GameController) BoardSVG(c *fiber.Ctx) error {
	image, err := gc.gameService.RenderBoard(c.Params("gameId"), c.QueryBool("flip"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(image)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.RemoveGame(c.Params("gameId")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
