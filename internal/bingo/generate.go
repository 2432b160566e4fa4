package bingo

import (
	"fmt"
	"math/rand/v2"
)

// GenerateBoards fills count boards with distinct numbers drawn from [0, pool).
func GenerateBoards(rnd *rand.Rand, size, count, pool int) ([]*Board, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if count <= 0 {
		return nil, ErrNoBoards
	}
	if pool < size*size {
		return nil, fmt.Errorf("%w: %d < %d", ErrPoolTooSmall, pool, size*size)
	}
	boards := make([]*Board, 0, count)
	for range count {
		board := NewBoard(size)
		for _, n := range rnd.Perm(pool)[:size*size] {
			board.Add(n)
		}
		boards = append(boards, board)
	}
	return boards, nil
}

// ShuffledDraws returns every number of [0, pool) in random order.
func ShuffledDraws(rnd *rand.Rand, pool int) []int {
	return rnd.Perm(pool)
}
