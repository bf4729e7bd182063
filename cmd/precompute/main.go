package main

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/urfave/cli/v2"

	"make10/internal/precompute"
	"make10/internal/table"
)

func main() {
	app := &cli.App{
		Name:  "make10-precompute",
		Usage: "Generate the make-10 solution table",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
				Value:   "internal/table/solutions.tsv",
			},
			&cli.Int64Flag{
				Name:  "target",
				Usage: "Value every expression must reach",
				Value: precompute.DefaultTarget,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of solver workers (0 uses every CPU)",
			},
			&cli.StringFlag{
				Name:  "verify",
				Usage: "Compare the generated table against an existing file instead of writing it",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	outputFile := c.String("output")
	verifyFile := c.String("verify")
	target := c.Int64("target")

	fmt.Printf("Make10 Table Pre-compute Tool\n")
	fmt.Printf("=============================\n\n")
	fmt.Printf("Target: %d\n", target)
	if verifyFile != "" {
		fmt.Printf("Verify against: %s\n", verifyFile)
	} else {
		fmt.Printf("Output file: %s\n", outputFile)
	}
	fmt.Println()

	// Track start time for elapsed time reporting
	programStart := time.Now()

	// Progress callback that shows elapsed time
	progressCallback := func(msg string) {
		elapsed := time.Since(programStart)
		fmt.Printf("[%s] %s\n", formatElapsed(elapsed), msg)
	}

	startTime := time.Now()
	t, err := precompute.Generate(target, c.Int("workers"), progressCallback)
	if err != nil {
		return err
	}
	processingTime := time.Since(startTime)

	if verifyFile != "" {
		progressCallback("Comparing with existing table...")
		if err := verify(t, verifyFile); err != nil {
			return err
		}
		fmt.Printf("\n✓ Table matches %s\n\n", verifyFile)
		return nil
	}

	progressCallback("Writing output file...")
	if err := precompute.WriteTableFile(t, outputFile); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}

	// Summary
	fmt.Printf("\n✓ Success!\n")
	fmt.Printf("  Combinations with solutions: %d\n", t.Len())
	fmt.Printf("  Processing time: %s\n", processingTime.Round(time.Millisecond))
	fmt.Printf("  Output file: %s\n", outputFile)
	fmt.Println()
	return nil
}

// verify reports the first index at which generated and the table stored in
// path disagree.
func verify(generated *table.Table, path string) error {
	stored, err := precompute.LoadTableFile(path)
	if err != nil {
		return err
	}

	var want, got bytes.Buffer
	if _, err := stored.WriteTo(&want); err != nil {
		return err
	}
	if _, err := generated.WriteTo(&got); err != nil {
		return err
	}
	if bytes.Equal(want.Bytes(), got.Bytes()) {
		return nil
	}

	for _, idx := range generated.Indices() {
		if !slices.Equal(generated.Lookup(idx), stored.Lookup(idx)) {
			return fmt.Errorf("table mismatch at %04d: generated %d solutions, stored %d",
				idx, len(generated.Lookup(idx)), len(stored.Lookup(idx)))
		}
	}
	return fmt.Errorf("table mismatch: generated %d populated entries, stored %d", generated.Len(), stored.Len())
}

// formatElapsed formats a duration into a human-readable elapsed time string
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60

	if minutes > 0 {
		return fmt.Sprintf("%dm%02ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
