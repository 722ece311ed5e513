package symmetry

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads an operator in reciprocal-space triplet notation.
//
// Each of the three comma-separated terms gives one output component as an
// integer combination of h, k and l, for example "-k,h-k,l" or "2*h,k,-l".
func Parse(s string) (Operator, error) {
	terms := strings.Split(strings.ReplaceAll(s, " ", ""), ",")
	if len(terms) != 3 {
		return Operator{}, fmt.Errorf("symmetry: parse %q: want 3 terms, got %d", s, len(terms))
	}

	var m [9]int
	for j, term := range terms {
		coeffs, err := parseTerm(term)
		if err != nil {
			return Operator{}, fmt.Errorf("symmetry: parse %q: %w", s, err)
		}
		for i := 0; i < 3; i++ {
			m[i*3+j] = coeffs[i]
		}
	}

	return Operator{m: m}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Operator {
	o, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return o
}

func parseTerm(term string) ([3]int, error) {
	var coeffs [3]int
	if term == "" {
		return coeffs, fmt.Errorf("empty term")
	}
	if term == "0" {
		return coeffs, nil
	}

	i := 0
	for i < len(term) {
		sign := 1
		switch term[i] {
		case '+':
			i++
		case '-':
			sign = -1
			i++
		}

		start := i
		for i < len(term) && term[i] >= '0' && term[i] <= '9' {
			i++
		}
		factor := 1
		if i > start {
			n, err := strconv.Atoi(term[start:i])
			if err != nil {
				return coeffs, err
			}
			factor = n
			if i < len(term) && term[i] == '*' {
				i++
			}
		}

		if i >= len(term) {
			return coeffs, fmt.Errorf("term %q: missing variable", term)
		}

		var axis int
		switch term[i] {
		case 'h', 'H':
			axis = 0
		case 'k', 'K':
			axis = 1
		case 'l', 'L':
			axis = 2
		default:
			return coeffs, fmt.Errorf("term %q: unexpected %q", term, term[i])
		}
		i++

		coeffs[axis] += sign * factor
	}

	return coeffs, nil
}
