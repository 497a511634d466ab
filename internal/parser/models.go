package parser

import (
	"errors"
	"fmt"
)

// Samples holds the two columns of a data file as parallel slices.
// X is the distribution density, Y the generation at which the board settled.
// Both slices always have the same length.
type Samples struct {
	X []float64
	Y []int
}

// NewSamples returns empty Samples with room for n points.
func NewSamples(n int) *Samples {
	return &Samples{
		X: make([]float64, 0, n),
		Y: make([]int, 0, n),
	}
}

// Append adds one (x, y) pair.
func (s *Samples) Append(x float64, y int) {
	s.X = append(s.X, x)
	s.Y = append(s.Y, y)
}

// Len returns the number of pairs.
func (s *Samples) Len() int {
	if s == nil {
		return 0
	}
	return len(s.X)
}

// ErrMalformedLine is wrapped by every LineError.
var ErrMalformedLine = errors.New("malformed line")

// LineError reports which input line could not be parsed and why.
type LineError struct {
	Line  int    // 1-based
	Token string // offending token, empty when a field is missing
	Err   error
}

func (e *LineError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Token, e.Err)
}

func (e *LineError) Unwrap() []error {
	return []error{ErrMalformedLine, e.Err}
}
