package bingo

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

type Placement struct {
	Index  int
	Number int
}

// Round applies a draw sequence one number at a time. Boards that have won
// are frozen and skipped by later draws.
type Round struct {
	boards     []*Board
	draws      []int
	next       int
	won        []bool
	placements []Placement
}

func NewRound(boards []*Board, draws []int) *Round {
	r := &Round{
		boards: cloneAll(boards),
		draws:  append([]int(nil), draws...),
		won:    make([]bool, len(boards)),
	}
	for i, b := range r.boards {
		r.won[i] = b.IsBingo()
	}
	return r
}

func (r *Round) Boards() []*Board {
	return r.boards
}

func (r *Round) Draws() []int {
	return r.draws
}

// Drawn returns the numbers applied so far.
func (r *Round) Drawn() []int {
	return r.draws[:r.next]
}

func (r *Round) Remaining() int {
	return len(r.draws) - r.next
}

func (r *Round) Won(i int) bool {
	return r.won[i]
}

func (r *Round) allWon() bool {
	for _, w := range r.won {
		if !w {
			return false
		}
	}
	return true
}

// Finished reports whether no further draw can change the outcome.
func (r *Round) Finished() bool {
	return r.Remaining() == 0 || r.allWon()
}

// Draw applies the next number to every board that has not won yet and
// returns the wins it produced, in board order.
func (r *Round) Draw() (int, []Win, error) {
	if r.Remaining() == 0 {
		return 0, nil, ErrDrawsExhausted
	}

	number := r.draws[r.next]
	r.next++

	var wins []Win
	for i, b := range r.boards {
		if r.won[i] {
			continue
		}
		b.Mark(number)
		if b.IsBingo() {
			r.won[i] = true
			r.placements = append(r.placements, Placement{Index: i, Number: number})
			wins = append(wins, Win{Index: i, Board: b, Number: number})
		}
	}
	return number, wins, nil
}

// Finish draws until every board has won or the draws run out.
func (r *Round) Finish() []Win {
	var wins []Win
	for !r.Finished() {
		_, w, err := r.Draw()
		if err != nil {
			break
		}
		wins = append(wins, w...)
	}
	return wins
}

func (r *Round) win(p Placement) Win {
	return Win{Index: p.Index, Board: r.boards[p.Index], Number: p.Number}
}

// Winners returns every win so far in the order the boards won.
func (r *Round) Winners() []Win {
	wins := make([]Win, len(r.placements))
	for i, p := range r.placements {
		wins[i] = r.win(p)
	}
	return wins
}

func (r *Round) First() (Win, bool) {
	if len(r.placements) == 0 {
		return Win{}, false
	}
	return r.win(r.placements[0]), true
}

func (r *Round) Last() (Win, bool) {
	if len(r.placements) == 0 {
		return Win{}, false
	}
	return r.win(r.placements[len(r.placements)-1]), true
}

type roundState struct {
	Boards     []*Board
	Draws      []int
	Next       int
	Won        []bool
	Placements []Placement
}

func DecodeRound(buf []byte) (*Round, error) {
	var state roundState
	if err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&state); err != nil {
		return nil, err
	}
	if len(state.Won) != len(state.Boards) {
		return nil, fmt.Errorf("%w: %d boards, %d won flags",
			ErrCorruptState, len(state.Boards), len(state.Won))
	}
	if state.Next < 0 || state.Next > len(state.Draws) {
		return nil, fmt.Errorf("%w: draw cursor %d out of %d",
			ErrCorruptState, state.Next, len(state.Draws))
	}
	for _, p := range state.Placements {
		if p.Index < 0 || p.Index >= len(state.Boards) {
			return nil, fmt.Errorf("%w: placement for board %d", ErrCorruptState, p.Index)
		}
	}
	r := &Round{
		boards:     state.Boards,
		draws:      state.Draws,
		next:       state.Next,
		won:        state.Won,
		placements: state.Placements,
	}
	return r, nil
}

func (r *Round) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(roundState{
		Boards:     r.boards,
		Draws:      r.draws,
		Next:       r.next,
		Won:        r.won,
		Placements: r.placements,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
