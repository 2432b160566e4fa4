package bingo

import "errors"

var (
	ErrNoWinner        = errors.New("no board won")
	ErrDrawsExhausted  = errors.New("no draws left")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrIncompleteBoard = errors.New("incomplete board")
	ErrNoBoards        = errors.New("no boards")
	ErrNoDraws         = errors.New("no draws")
	ErrPoolTooSmall    = errors.New("number pool too small for board")
	ErrInvalidSize     = errors.New("invalid board size")
	ErrCorruptState    = errors.New("corrupt game state")
)
