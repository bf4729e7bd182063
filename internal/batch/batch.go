// Package batch drives the native lookup path over newline-delimited input,
// one four-digit query per line.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"make10/internal/digits"
)

// ReadBufferSize is the input buffer size.
const ReadBufferSize = 64 * 1024

// maxLineSize bounds a single input line.
const maxLineSize = 1024 * 1024

// cancelCheckInterval is how many lines are read between context checks.
const cancelCheckInterval = 4096

// Solver is the lookup the batch runs against. *bridge.Native satisfies it.
type Solver interface {
	Solve(n1, n2, n3, n4 int) []string
}

// Stats summarizes one batch run.
type Stats struct {
	Lines     int // lines read
	Skipped   int // lines shorter than four bytes after trimming
	Rejected  int // lines whose first four bytes are not all digits
	Solved    int // lines answered with at least one solution
	Solutions int // total expressions returned
}

// Queries is the number of lines that reached the solver.
func (s Stats) Queries() int {
	return s.Lines - s.Skipped
}

// Process reads r line by line and looks every line up with solver. Each line
// is trimmed; lines shorter than four bytes are skipped and only the first
// four bytes of longer lines are used. With echo set, one
// "LINE -> [expr, expr]" line is written to w per query; otherwise w is
// untouched.
func Process(ctx context.Context, r io.Reader, w io.Writer, solver Solver, echo bool) (Stats, error) {
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, ReadBufferSize), maxLineSize)

	var out *bufio.Writer
	if echo {
		out = bufio.NewWriterSize(w, ReadBufferSize)
	}

	for scanner.Scan() {
		stats.Lines++
		if stats.Lines%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if len(line) < 4 {
			stats.Skipped++
			continue
		}

		n1, n2, n3, n4 := digits.FromASCII(line)
		if _, err := digits.Index(n1, n2, n3, n4); err != nil {
			stats.Rejected++
		}

		sols := solver.Solve(n1, n2, n3, n4)
		if len(sols) > 0 {
			stats.Solved++
			stats.Solutions += len(sols)
		}

		if out != nil {
			if _, err := fmt.Fprintf(out, "%s -> [%s]\n", line, strings.Join(sols, ", ")); err != nil {
				return stats, fmt.Errorf("failed to write result: %w", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read input: %w", err)
	}

	if out != nil {
		if err := out.Flush(); err != nil {
			return stats, fmt.Errorf("failed to flush output: %w", err)
		}
	}

	return stats, nil
}

// GenerateInput writes n random zero-padded four-digit lines to w.
func GenerateInput(w io.Writer, n int, rng *rand.Rand) error {
	out := bufio.NewWriterSize(w, ReadBufferSize)
	for i := 0; i < n; i++ {
		if _, err := fmt.Fprintf(out, "%04d\n", rng.IntN(digits.Slots)); err != nil {
			return fmt.Errorf("failed to write input: %w", err)
		}
	}
	return out.Flush()
}
