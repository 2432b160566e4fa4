package puzzle

import (
	"fmt"

	"github.com/vancomm/bingo-server/internal/bingo"
	"github.com/vancomm/bingo-server/internal/diagnostic"
	"github.com/vancomm/bingo-server/internal/dive"
	"github.com/vancomm/bingo-server/internal/sonar"
)

var ErrNoWinner = fmt.Errorf("puzzle: %w", bingo.ErrNoWinner)

func init() {
	Register("sonar", SolverFunc(solveSonar))
	Register("dive", SolverFunc(solveDive))
	Register("diagnostic", SolverFunc(solveDiagnostic))
	Register("bingo", SolverFunc(solveBingo))
}

func solveSonar(input string) (Answer, error) {
	depths, err := sonar.ParseDepths(input)
	if err != nil {
		return Answer{}, err
	}
	return Answer{
		Part1: sonar.CountIncreases(depths),
		Part2: sonar.CountIncreases(sonar.WindowSums(depths, 3)),
	}, nil
}

func solveDive(input string) (Answer, error) {
	course, err := dive.ParseCourse(input)
	if err != nil {
		return Answer{}, err
	}
	return Answer{
		Part1: dive.Navigate(course).Product(),
		Part2: dive.NavigateWithAim(course).Product(),
	}, nil
}

func solveDiagnostic(input string) (Answer, error) {
	report, err := diagnostic.ParseReport(input)
	if err != nil {
		return Answer{}, err
	}
	gamma, epsilon := diagnostic.PowerRates(report)
	oxygen, err := diagnostic.Oxygen.Apply(report)
	if err != nil {
		return Answer{}, err
	}
	co2, err := diagnostic.CO2.Apply(report)
	if err != nil {
		return Answer{}, err
	}
	return Answer{Part1: gamma * epsilon, Part2: oxygen * co2}, nil
}

func solveBingo(input string) (Answer, error) {
	boards, draws, err := bingo.ParseGame(input)
	if err != nil {
		return Answer{}, err
	}
	first, ok := bingo.FirstWinner(boards, draws)
	if !ok {
		return Answer{}, ErrNoWinner
	}
	last, ok := bingo.LastWinner(boards, draws)
	if !ok {
		return Answer{}, ErrNoWinner
	}
	return Answer{Part1: first.Score(), Part2: last.Score()}, nil
}
