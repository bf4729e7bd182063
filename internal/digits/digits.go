// Package digits maps an unordered quadruple of decimal digits to a dense
// index in [0, Slots).
//
// The index of a quadruple is the base-10 number spelled by its digits in
// ascending order, so every permutation of the same four digits lands on the
// same slot: Index(4, 3, 2, 1) == Index(1, 2, 3, 4) == 1234.
package digits

import "errors"

const (
	// Max is the largest accepted digit value.
	Max = 9

	// Slots is the size of the index space, 10^4.
	Slots = 10000
)

// ErrInvalidDigit is returned when any input lies outside [0, Max].
var ErrInvalidDigit = errors.New("digit out of range")

// Index returns the canonical index of the quadruple (n1, n2, n3, n4).
// It runs in constant time and does not allocate.
func Index(n1, n2, n3, n4 int) (int, error) {
	if uint(n1) > Max || uint(n2) > Max || uint(n3) > Max || uint(n4) > Max {
		return 0, ErrInvalidDigit
	}
	a, b, c, d := Sort(n1, n2, n3, n4)
	return a*1000 + b*100 + c*10 + d, nil
}

// Sort orders four values ascending with a five-comparator sorting network.
func Sort(n1, n2, n3, n4 int) (a, b, c, d int) {
	if n1 > n2 {
		n1, n2 = n2, n1
	}
	if n3 > n4 {
		n3, n4 = n4, n3
	}
	if n1 > n3 {
		n1, n3 = n3, n1
	}
	if n2 > n4 {
		n2, n4 = n4, n2
	}
	if n2 > n3 {
		n2, n3 = n3, n2
	}
	return n1, n2, n3, n4
}

// FromASCII converts the first four bytes of s to digit values by subtracting
// '0'. Bytes other than '0'-'9' produce values outside [0, Max], which Index
// rejects. s must be at least four bytes long.
func FromASCII[T ~string | ~[]byte](s T) (n1, n2, n3, n4 int) {
	return int(s[0]) - '0', int(s[1]) - '0', int(s[2]) - '0', int(s[3]) - '0'
}

// Digits decodes idx into its four positional digits, most significant first.
func Digits(idx int) [4]int {
	return [4]int{idx / 1000 % 10, idx / 100 % 10, idx / 10 % 10, idx % 10}
}

// IsCanonical reports whether idx can be produced by Index, that is whether it
// lies in range and its digits are non-decreasing.
func IsCanonical(idx int) bool {
	if idx < 0 || idx >= Slots {
		return false
	}
	d := Digits(idx)
	return d[0] <= d[1] && d[1] <= d[2] && d[2] <= d[3]
}

// Canonical returns every index Index can produce, ascending.
// There are 715 of them, one per multiset of four digits.
func Canonical() []int {
	out := make([]int, 0, 715)
	for a := 0; a <= Max; a++ {
		for b := a; b <= Max; b++ {
			for c := b; c <= Max; c++ {
				for d := c; d <= Max; d++ {
					out = append(out, a*1000+b*100+c*10+d)
				}
			}
		}
	}
	return out
}
