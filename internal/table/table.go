// Package table holds the precomputed solution sets, addressed by canonical
// index.
//
// The table is built once, either from the embedded asset or from a file
// produced by the precompute tool, and is never modified afterwards. Slices
// returned by Lookup are shared by every caller and must be treated as
// read-only.
package table

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"make10/internal/digits"
)

const (
	// Scanner buffer sizes for reading table files
	scannerInitialBuffer = 64 * 1024   // 64 KB
	scannerMaxBuffer     = 1024 * 1024 // 1 MB

	fieldSep = "\t"
)

//go:embed solutions.tsv
var embedded string

// Source is anything that can hand out the solution set for an index.
type Source interface {
	Lookup(idx int) []string
}

// Table is an immutable index-addressed array of solution sets.
type Table struct {
	sets      [digits.Slots][]string
	populated int
}

// Default returns the table parsed from the embedded asset. The asset is
// parsed on first use only.
var Default = sync.OnceValue(func() *Table {
	t, err := Parse(strings.NewReader(embedded))
	if err != nil {
		panic(fmt.Sprintf("table: embedded solutions are corrupt: %v", err))
	}
	return t
})

// New builds a table from a map of index to solution set. Empty sets are
// dropped. The slices are copied.
func New(entries map[int][]string) (*Table, error) {
	t := &Table{}
	for idx, sols := range entries {
		if idx < 0 || idx >= digits.Slots {
			return nil, fmt.Errorf("index %d out of range", idx)
		}
		if len(sols) == 0 {
			continue
		}
		t.sets[idx] = append([]string(nil), sols...)
		t.populated++
	}
	return t, nil
}

// Parse reads a table in the line format written by WriteTo.
func Parse(r io.Reader) (*Table, error) {
	t := &Table{}

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, scannerInitialBuffer)
	scanner.Buffer(buf, scannerMaxBuffer)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, fieldSep)
		idx, err := strconv.Atoi(fields[0])
		if err != nil || len(fields[0]) != 4 || idx < 0 {
			return nil, fmt.Errorf("line %d: malformed index %q", lineNo, fields[0])
		}
		if t.sets[idx] != nil {
			return nil, fmt.Errorf("line %d: duplicate index %04d", lineNo, idx)
		}

		sols := fields[1:]
		if len(sols) == 0 {
			continue
		}
		t.sets[idx] = sols
		t.populated++
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading table: %w", err)
	}

	return t, nil
}

// Lookup returns the solution set stored at idx, or nil when there is none.
// Indices outside [0, digits.Slots) yield nil.
func (t *Table) Lookup(idx int) []string {
	if idx < 0 || idx >= digits.Slots {
		return nil
	}
	return t.sets[idx]
}

// Len returns the number of indices with at least one solution.
func (t *Table) Len() int {
	return t.populated
}

// Indices returns the indices holding a non-empty solution set, ascending.
func (t *Table) Indices() []int {
	out := make([]int, 0, t.populated)
	for idx, sols := range t.sets {
		if len(sols) > 0 {
			out = append(out, idx)
		}
	}
	sort.Ints(out)
	return out
}

// WriteTo writes the table as text: one line per non-empty entry holding the
// zero-padded index followed by its solutions, all tab separated.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, idx := range t.Indices() {
		n, err := bw.WriteString(fmt.Sprintf("%04d%s%s\n", idx, fieldSep, strings.Join(t.sets[idx], fieldSep)))
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("failed to write index %04d: %w", idx, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return total, fmt.Errorf("failed to flush table: %w", err)
	}
	return total, nil
}
