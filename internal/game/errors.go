package game

import "errors"

var (
	ErrRoundNotActive = errors.New("round not active")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrPlayerDone     = errors.New("player already done")
	ErrDeckExhausted  = errors.New("deck exhausted")
)
