package bridge

import (
	"make10/internal/digits"
	"make10/internal/table"
)

// emptyBody is the body returned for rejected input.
const emptyBody = "[]"

// Solver is the primary call surface: four digits in, a Payload out.
type Solver struct {
	strategy Strategy
}

// NewSolver returns a Solver backed by s.
func NewSolver(s Strategy) *Solver {
	return &Solver{strategy: s}
}

// Strategy returns the strategy the solver delegates to.
func (s *Solver) Strategy() Strategy {
	return s.strategy
}

// Solve returns the payload for the quadruple (n1, n2, n3, n4).
//
// Digits outside 0-9 are not an error here: the result is an empty payload
// with Index -1. Errors are reserved for internal failures such as a
// poisoned cache or a failed conversion.
func (s *Solver) Solve(n1, n2, n3, n4 int) (*Payload, error) {
	idx, err := digits.Index(n1, n2, n3, n4)
	if err != nil {
		invalidDigits.Inc()
		body := []byte(emptyBody)
		return &Payload{Index: -1, Body: body, ETag: etag(body)}, nil
	}
	return s.strategy.Represent(idx)
}

// Native reads solution sets straight from the table without encoding or
// copying.
type Native struct {
	src table.Source
}

// NewNative returns a native path over src.
func NewNative(src table.Source) *Native {
	return &Native{src: src}
}

// Solve returns the table's own slice for the quadruple, or nil when a digit
// is out of range. The slice must not be modified.
func (n *Native) Solve(n1, n2, n3, n4 int) []string {
	idx, err := digits.Index(n1, n2, n3, n4)
	if err != nil {
		return nil
	}
	return n.src.Lookup(idx)
}
