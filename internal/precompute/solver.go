package precompute

import (
	"fmt"
	"math/big"
	"sort"
)

// DefaultTarget is the value every expression in the shipped table reaches.
const DefaultTarget = 10

type operator struct {
	symbol byte
	apply  func(x, y *big.Rat) *big.Rat
}

// operators lists the four arithmetic operators in generation order.
// Division by zero yields nil.
var operators = [4]operator{
	{'+', func(x, y *big.Rat) *big.Rat { return new(big.Rat).Add(x, y) }},
	{'-', func(x, y *big.Rat) *big.Rat { return new(big.Rat).Sub(x, y) }},
	{'*', func(x, y *big.Rat) *big.Rat { return new(big.Rat).Mul(x, y) }},
	{'/', func(x, y *big.Rat) *big.Rat {
		if y.Sign() == 0 {
			return nil
		}
		return new(big.Rat).Quo(x, y)
	}},
}

// Solve returns every expression over nums that evaluates exactly to target,
// sorted and without duplicates.
//
// Each distinct ordering of nums is combined with every choice of three
// operators in two shapes: ((a∘b)∘c)∘d and (a∘b)∘(c∘d).
func Solve(nums [4]int, target int64) []string {
	want := big.NewRat(target, 1)
	found := make(map[string]struct{})

	for _, p := range permutations(nums) {
		var r [4]*big.Rat
		for i, n := range p {
			r[i] = big.NewRat(int64(n), 1)
		}

		for _, op1 := range operators {
			ab := op1.apply(r[0], r[1])
			for _, op2 := range operators {
				abc := (*big.Rat)(nil)
				if ab != nil {
					abc = op2.apply(ab, r[2])
				}
				cd := op2.apply(r[2], r[3])

				for _, op3 := range operators {
					// ((a op1 b) op2 c) op3 d
					if abc != nil {
						if v := op3.apply(abc, r[3]); v != nil && v.Cmp(want) == 0 {
							found[fmt.Sprintf("((%d%c%d)%c%d)%c%d", p[0], op1.symbol, p[1], op2.symbol, p[2], op3.symbol, p[3])] = struct{}{}
						}
					}
					// (a op1 b) op3 (c op2 d)
					if ab != nil && cd != nil {
						if v := op3.apply(ab, cd); v != nil && v.Cmp(want) == 0 {
							found[fmt.Sprintf("(%d%c%d)%c(%d%c%d)", p[0], op1.symbol, p[1], op3.symbol, p[2], op2.symbol, p[3])] = struct{}{}
						}
					}
				}
			}
		}
	}

	if len(found) == 0 {
		return nil
	}
	out := make([]string, 0, len(found))
	for expr := range found {
		out = append(out, expr)
	}
	sort.Strings(out)
	return out
}

// permutations returns the distinct orderings of nums.
func permutations(nums [4]int) [][4]int {
	seen := make(map[[4]int]struct{}, 24)
	var out [][4]int
	var permute func(p [4]int, k int)
	permute = func(p [4]int, k int) {
		if k == len(p) {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				out = append(out, p)
			}
			return
		}
		for i := k; i < len(p); i++ {
			p[k], p[i] = p[i], p[k]
			permute(p, k+1)
			p[k], p[i] = p[i], p[k]
		}
	}
	permute(nums, 0)
	return out
}
