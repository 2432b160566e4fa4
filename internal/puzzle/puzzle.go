// Package puzzle maps puzzle names to solvers that turn raw puzzle input
// into a pair of answers.
package puzzle

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var ErrUnknownPuzzle = errors.New("unknown puzzle")

type Answer struct {
	Part1 int `json:"part1"`
	Part2 int `json:"part2"`
}

type Solver interface {
	Solve(input string) (Answer, error)
}

type SolverFunc func(input string) (Answer, error)

func (f SolverFunc) Solve(input string) (Answer, error) {
	return f(input)
}

var (
	mu      sync.RWMutex
	solvers = map[string]Solver{}
)

// Register makes a solver available by name. Registering a name twice
// panics.
func Register(name string, s Solver) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := solvers[name]; dup {
		panic("puzzle: Register called twice for " + name)
	}
	solvers[name] = s
}

func Lookup(name string) (Solver, error) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := solvers[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPuzzle, name)
	}
	return s, nil
}

func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(solvers))
	for name := range solvers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func Solve(name, input string) (Answer, error) {
	s, err := Lookup(name)
	if err != nil {
		return Answer{}, err
	}
	return s.Solve(input)
}
