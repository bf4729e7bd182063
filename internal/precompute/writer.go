package precompute

import (
	"bytes"
	"fmt"
	"os"

	"make10/internal/table"
)

// WriteTableFile writes the table to a plain text file, one index per line.
// Indices without solutions are omitted.
func WriteTableFile(t *table.Table, outputPath string) error {
	var buf bytes.Buffer
	if _, err := t.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write table file: %w", err)
	}

	return nil
}
