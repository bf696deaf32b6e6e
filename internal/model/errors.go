package model

import "errors"

var (
	ErrOutOfRange      = errors.New("coordinate out of range")
	ErrInvalidNotation = errors.New("invalid square notation")
	ErrIllegalMove     = errors.New("illegal move")
	ErrNoPiece         = errors.New("no piece at from square")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrGameFull        = errors.New("game is full")
	ErrNotInGame       = errors.New("player not in game")
)
