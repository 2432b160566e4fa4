package bingo

import (
	"fmt"
	"strconv"
	"strings"
)

func parseNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w %q", ErrInvalidNumber, s)
	}
	return n, nil
}

// paragraphs splits text on blank lines, dropping empty paragraphs.
func paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var (
		out     []string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			out = append(out, strings.Join(current, "\n"))
			current = current[:0]
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return out
}

// ParseDraws parses a comma-separated draw sequence.
func ParseDraws(text string) ([]int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoDraws
	}
	parts := strings.Split(text, ",")
	draws := make([]int, 0, len(parts))
	for i, part := range parts {
		n, err := parseNumber(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("draw %d: %w", i+1, err)
		}
		draws = append(draws, n)
	}
	return draws, nil
}

func parseBoard(block string, size int) (*Board, error) {
	fields := strings.Fields(block)
	if len(fields) != size*size {
		return nil, fmt.Errorf("%w: got %d numbers, want %d",
			ErrIncompleteBoard, len(fields), size*size)
	}
	board := NewBoard(size)
	for _, field := range fields {
		n, err := parseNumber(field)
		if err != nil {
			return nil, err
		}
		board.Add(n)
	}
	return board, nil
}

// ParseBoards parses size×size boards separated by blank lines.
func ParseBoards(text string, size int) ([]*Board, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	blocks := paragraphs(text)
	if len(blocks) == 0 {
		return nil, ErrNoBoards
	}
	boards := make([]*Board, 0, len(blocks))
	for i, block := range blocks {
		board, err := parseBoard(block, size)
		if err != nil {
			return nil, fmt.Errorf("board %d: %w", i+1, err)
		}
		boards = append(boards, board)
	}
	return boards, nil
}

// ParseGame parses a draw line followed by boards. The board size is the
// row count of the first board.
func ParseGame(text string) ([]*Board, []int, error) {
	blocks := paragraphs(text)
	if len(blocks) == 0 {
		return nil, nil, ErrNoDraws
	}
	draws, err := ParseDraws(blocks[0])
	if err != nil {
		return nil, nil, err
	}
	if len(blocks) == 1 {
		return nil, nil, ErrNoBoards
	}
	size := len(strings.Split(blocks[1], "\n"))
	boards, err := ParseBoards(strings.Join(blocks[1:], "\n\n"), size)
	if err != nil {
		return nil, nil, err
	}
	return boards, draws, nil
}
