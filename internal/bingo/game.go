package bingo

// Win is a board that reached bingo together with the number that completed
// its line. Board is frozen at the moment of winning.
type Win struct {
	Index  int
	Board  *Board
	Number int
}

func (w Win) Score() int {
	return w.Board.CountUnmarked() * w.Number
}

func cloneAll(boards []*Board) []*Board {
	clones := make([]*Board, len(boards))
	for i, b := range boards {
		clones[i] = b.Clone()
	}
	return clones
}

// FirstWinner replays draws and returns the first board, in board order, to
// reach bingo. Boards after the winner are not marked with the winning number.
func FirstWinner(boards []*Board, draws []int) (Win, bool) {
	boards = cloneAll(boards)
	for _, number := range draws {
		for i, b := range boards {
			b.Mark(number)
			if b.IsBingo() {
				return Win{Index: i, Board: b, Number: number}, true
			}
		}
	}
	return Win{}, false
}

// LastWinner replays every draw, skipping boards that already won, and
// returns the last board to reach bingo.
func LastWinner(boards []*Board, draws []int) (Win, bool) {
	boards = cloneAll(boards)
	won := make([]bool, len(boards))
	for i, b := range boards {
		won[i] = b.IsBingo()
	}

	var (
		last Win
		ok   bool
	)
	for _, number := range draws {
		for i, b := range boards {
			if won[i] {
				continue
			}
			b.Mark(number)
			if b.IsBingo() {
				won[i] = true
				last, ok = Win{Index: i, Board: b, Number: number}, true
			}
		}
	}
	return last, ok
}
