// Package diagnostic decodes the submarine's binary diagnostic report.
package diagnostic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmptyReport   = errors.New("empty report")
	ErrInvalidReport = errors.New("invalid report")
	ErrNoRating      = errors.New("rating did not narrow to one number")
)

// Report is a list of equal-width binary numbers.
type Report []string

func ParseReport(text string) (Report, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, ErrEmptyReport
	}
	width := len(fields[0])
	for i, f := range fields {
		if len(f) != width {
			return nil, fmt.Errorf("%w: line %d has %d bits, want %d",
				ErrInvalidReport, i+1, len(f), width)
		}
		if strings.Trim(f, "01") != "" {
			return nil, fmt.Errorf("%w: line %d is not binary: %q", ErrInvalidReport, i+1, f)
		}
	}
	return Report(fields), nil
}

func (r Report) Width() int {
	if len(r) == 0 {
		return 0
	}
	return len(r[0])
}

func countOnes(numbers []string, pos int) int {
	ones := 0
	for _, n := range numbers {
		if n[pos] == '1' {
			ones++
		}
	}
	return ones
}

// PowerRates returns gamma, built from the most common bit of every
// position (ties give 0), and epsilon, its complement.
func PowerRates(r Report) (gamma, epsilon int) {
	width := r.Width()
	for pos := range width {
		gamma <<= 1
		if ones := countOnes(r, pos); ones > len(r)-ones {
			gamma |= 1
		}
	}
	mask := 1<<width - 1
	return gamma, ^gamma & mask
}

type Rating int

const (
	Oxygen Rating = iota
	CO2
)

// Rating implements [fmt.Stringer]
func (rt Rating) String() string {
	switch rt {
	case Oxygen:
		return "oxygen generator"
	case CO2:
		return "CO2 scrubber"
	default:
		return "rating(" + strconv.Itoa(int(rt)) + ")"
	}
}

func (rt Rating) keep(ones, zeros int) byte {
	switch {
	case ones == 0:
		return '0'
	case zeros == 0:
		return '1'
	case rt == Oxygen && ones >= zeros:
		return '1'
	case rt == Oxygen:
		return '0'
	case ones < zeros:
		return '1'
	default:
		return '0'
	}
}

// Apply narrows the report one bit position at a time until one number is
// left. Oxygen keeps the most common bit (ties keep 1), CO2 the least common
// (ties keep 0).
func (rt Rating) Apply(r Report) (int, error) {
	if len(r) == 0 {
		return 0, ErrEmptyReport
	}
	numbers := append([]string(nil), r...)
	for pos := 0; len(numbers) > 1; pos++ {
		if pos >= r.Width() {
			return 0, fmt.Errorf("%s: %w (%d left)", rt, ErrNoRating, len(numbers))
		}
		ones := countOnes(numbers, pos)
		bit := rt.keep(ones, len(numbers)-ones)
		kept := numbers[:0]
		for _, n := range numbers {
			if n[pos] == bit {
				kept = append(kept, n)
			}
		}
		numbers = kept
	}
	v, err := strconv.ParseInt(numbers[0], 2, 64)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}
