package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"make10/internal/batch"
	"make10/internal/bridge"
	"make10/internal/logging"
	"make10/internal/table"
)

func main() {
	app := &cli.App{
		Name:      "make10-batch",
		Usage:     "Look up every four-digit line of a file",
		ArgsUsage: "<input_file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "print",
				Aliases: []string{"p"},
				Usage:   "Print LINE -> [solutions] for every query",
			},
			&cli.IntFlag{
				Name:  "generate",
				Usage: "Write N random queries to <input_file> instead of reading it",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "Seed for --generate (0 picks one from the clock)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level",
				Value: "info",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit(fmt.Sprintf("Usage: %s <input_file>", c.App.Name), 1)
	}
	filename := c.Args().First()

	logger, err := logging.New(c.String("log-level"), true)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if n := c.Int("generate"); n > 0 {
		return generate(logger, filename, n, c.Uint64("seed"))
	}

	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	native := bridge.NewNative(table.Default())

	start := time.Now()
	stats, err := batch.Process(c.Context, f, os.Stdout, native, c.Bool("print"))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	opsPerSec := 0.0
	if elapsed > 0 {
		opsPerSec = float64(stats.Queries()) / elapsed.Seconds()
	}
	logger.Info("Batch complete",
		zap.Int("lines", stats.Lines),
		zap.Int("queries", stats.Queries()),
		zap.Int("skipped", stats.Skipped),
		zap.Int("rejected", stats.Rejected),
		zap.Int("solved", stats.Solved),
		zap.Duration("elapsed", elapsed),
		zap.Float64("ops_per_sec", opsPerSec))
	return nil
}

func generate(logger *zap.Logger, filename string, n int, seed uint64) error {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create input: %w", err)
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	if err := batch.GenerateInput(f, n, rng); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close input: %w", err)
	}

	logger.Info("Generated input", zap.String("file", filename), zap.Int("records", n), zap.Uint64("seed", seed))
	return nil
}
