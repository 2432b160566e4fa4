// Package dive plots a submarine course from piloting commands.
package dive

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Direction string

const (
	Forward Direction = "forward"
	Down    Direction = "down"
	Up      Direction = "up"
)

var (
	ErrInvalidCommand   = errors.New("invalid command")
	ErrUnknownDirection = errors.New("unknown direction")
)

type Command struct {
	Direction Direction
	Units     int
}

func ParseCommand(s string) (Command, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Command{}, fmt.Errorf("%w %q", ErrInvalidCommand, s)
	}
	units, err := strconv.Atoi(fields[1])
	if err != nil || units < 0 {
		return Command{}, fmt.Errorf("%w: bad units %q", ErrInvalidCommand, fields[1])
	}
	switch d := Direction(fields[0]); d {
	case Forward, Down, Up:
		return Command{Direction: d, Units: units}, nil
	default:
		return Command{}, fmt.Errorf("%w %q", ErrUnknownDirection, fields[0])
	}
}

// ParseCourse parses one command per line, skipping blank lines.
func ParseCourse(text string) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(strings.NewReader(text))
	line := 0
	for scanner.Scan() {
		line++
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		cmd, err := ParseCommand(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cmds, nil
}

type Position struct {
	Horizontal int
	Depth      int
}

func (p Position) Product() int {
	return p.Horizontal * p.Depth
}

// Navigate treats down and up as direct depth changes.
func Navigate(cmds []Command) Position {
	var p Position
	for _, cmd := range cmds {
		switch cmd.Direction {
		case Forward:
			p.Horizontal += cmd.Units
		case Down:
			p.Depth += cmd.Units
		case Up:
			p.Depth -= cmd.Units
		}
	}
	return p
}

// NavigateWithAim treats down and up as aim changes; moving forward dives
// by aim times the units moved.
func NavigateWithAim(cmds []Command) Position {
	var (
		p   Position
		aim int
	)
	for _, cmd := range cmds {
		switch cmd.Direction {
		case Forward:
			p.Horizontal += cmd.Units
			p.Depth += aim * cmd.Units
		case Down:
			aim += cmd.Units
		case Up:
			aim -= cmd.Units
		}
	}
	return p
}
