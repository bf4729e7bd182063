package precompute

import (
	"fmt"
	"os"

	"make10/internal/table"
)

// LoadTableFile reads a table previously written by WriteTableFile.
func LoadTableFile(filename string) (*table.Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer f.Close()

	t, err := table.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filename, err)
	}

	return t, nil
}
