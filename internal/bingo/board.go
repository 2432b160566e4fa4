package bingo

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"strings"
)

type Cell struct {
	Value  int  `json:"value"`
	Marked bool `json:"marked"`
}

// Board is a size×size grid filled in row-major order. Cell values never
// change once placed; marking only touches the parallel mark set.
type Board struct {
	size    int
	numbers []int
	marked  []bool
}

func NewBoard(size int) *Board {
	return &Board{
		size:    size,
		numbers: make([]int, 0, size*size),
		marked:  make([]bool, 0, size*size),
	}
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) Full() bool {
	return len(b.numbers) >= b.size*b.size
}

// Add appends number to the first row with remaining capacity. Adding to a
// full board does nothing.
func (b *Board) Add(number int) {
	if b.Full() {
		return
	}
	b.numbers = append(b.numbers, number)
	b.marked = append(b.marked, false)
}

// Mark marks the first unmarked cell holding number, if any.
func (b *Board) Mark(number int) {
	for i, n := range b.numbers {
		if n == number && !b.marked[i] {
			b.marked[i] = true
			return
		}
	}
}

func (b *Board) rows() int {
	return len(b.numbers) / b.size
}

func (b *Board) IsBingo() bool {
	if b.size == 0 {
		return false
	}

	rows := b.rows()
	for r := range rows {
		complete := true
		for _, m := range b.marked[r*b.size : (r+1)*b.size] {
			if !m {
				complete = false
				break
			}
		}
		if complete {
			return true
		}
	}

	for c := range b.size {
		count := 0
		for r := range rows {
			if b.marked[r*b.size+c] {
				count++
			}
		}
		if count == b.size {
			return true
		}
	}

	return false
}

func (b *Board) CountUnmarked() int {
	sum := 0
	for i, n := range b.numbers {
		if !b.marked[i] {
			sum += n
		}
	}
	return sum
}

func (b *Board) Clone() *Board {
	return &Board{
		size:    b.size,
		numbers: append(make([]int, 0, cap(b.numbers)), b.numbers...),
		marked:  append(make([]bool, 0, cap(b.marked)), b.marked...),
	}
}

// Cells returns a copy of the populated rows.
func (b *Board) Cells() [][]Cell {
	cells := make([][]Cell, 0, b.size)
	for r := 0; r*b.size < len(b.numbers); r++ {
		end := min((r+1)*b.size, len(b.numbers))
		row := make([]Cell, 0, b.size)
		for i := r * b.size; i < end; i++ {
			row = append(row, Cell{Value: b.numbers[i], Marked: b.marked[i]})
		}
		cells = append(cells, row)
	}
	return cells
}

// Board implements [fmt.Stringer]
func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.Cells() {
		for i, cell := range row {
			if i > 0 {
				sb.WriteByte(' ')
			}
			if cell.Marked {
				fmt.Fprintf(&sb, "[%2d]", cell.Value)
			} else {
				fmt.Fprintf(&sb, " %2d ", cell.Value)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

type boardState struct {
	Size    int
	Numbers []int
	Marked  []bool
}

// Board implements [gob.GobEncoder]
func (b *Board) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(boardState{b.size, b.numbers, b.marked})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Board implements [gob.GobDecoder]
func (b *Board) GobDecode(data []byte) error {
	var state boardState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return err
	}
	if len(state.Numbers) != len(state.Marked) {
		return fmt.Errorf("%w: %d numbers, %d marks",
			ErrCorruptState, len(state.Numbers), len(state.Marked))
	}
	if len(state.Numbers) > state.Size*state.Size {
		return fmt.Errorf("%w: %d numbers on a %dx%d board",
			ErrCorruptState, len(state.Numbers), state.Size, state.Size)
	}
	b.size = state.Size
	b.numbers = state.Numbers
	b.marked = state.Marked
	return nil
}
