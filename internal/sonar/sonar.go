// Package sonar analyses sonar sweep depth readings.
package sonar

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidDepth = errors.New("invalid depth")

// ParseDepths reads one depth per line, skipping blank lines.
func ParseDepths(text string) ([]int, error) {
	var depths []int
	scanner := bufio.NewScanner(strings.NewReader(text))
	line := 0
	for scanner.Scan() {
		line++
		field := strings.TrimSpace(scanner.Text())
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("line %d: %w %q", line, ErrInvalidDepth, field)
		}
		depths = append(depths, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return depths, nil
}

// CountIncreases counts readings deeper than the one before.
func CountIncreases(depths []int) int {
	count := 0
	for i := 1; i < len(depths); i++ {
		if depths[i] > depths[i-1] {
			count++
		}
	}
	return count
}

// WindowSums returns the sum of every run of n consecutive readings.
func WindowSums(depths []int, n int) []int {
	if n <= 0 || len(depths) < n {
		return nil
	}
	sums := make([]int, 0, len(depths)-n+1)
	sum := 0
	for i, d := range depths {
		sum += d
		if i >= n {
			sum -= depths[i-n]
		}
		if i >= n-1 {
			sums = append(sums, sum)
		}
	}
	return sums
}
