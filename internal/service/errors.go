package service

import "errors"

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrTooManyGames      = errors.New("too many games")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrIllegalMove       = errors.New("illegal move")
	ErrPromotionRequired = errors.New("promotion piece required")
	ErrGameOver          = errors.New("game is over")
)
