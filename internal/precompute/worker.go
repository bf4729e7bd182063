package precompute

import (
	"fmt"

	"make10/internal/digits"
)

// solveWorker solves each index received on indices and sends the result on results
func solveWorker(target int64, indices <-chan int, results chan<- solved) error {
	for idx := range indices {
		if !digits.IsCanonical(idx) {
			return fmt.Errorf("index %d is not a canonical digit combination", idx)
		}
		results <- solved{index: idx, solutions: Solve(digits.Digits(idx), target)}
	}
	return nil
}
