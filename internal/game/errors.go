package game

import "errors"

var (
	ErrInvalidMove   = errors.New("invalid move")
	ErrGameConcluded = errors.New("game already concluded")
	ErrUnknownPolicy = errors.New("unknown binding policy")
	ErrInvalidBoard  = errors.New("invalid board")
)
