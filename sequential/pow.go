package sequential

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/exascience/partile"
)

// Pow computes a raised to the power n by repeated squaring. It panics
// if n is negative.
func Pow[T constraints.Integer](a, n T) T {
	return PowFunc(a, n, func(x, y T) T { return x * y })
}

// PowFunc computes the n-fold combination of a under op by repeated
// squaring, performing O(log n) applications of op. op must be
// associative, and n == 0 returns 1, so op should be a monoid operation
// with 1 as its identity for the result to be meaningful at zero.
// PowFunc panics if n is negative.
//
// The accumulation scheme follows Stepanov, A. & McJones, P. (2009)
// "Elements of Programming".
func PowFunc[T constraints.Integer](a, n T, op partile.BinaryOp[T]) T {
	if n < 0 {
		panic(fmt.Sprintf("invalid exponent: %v", n))
	}
	if n == 0 {
		return 1
	}
	for n%2 == 0 {
		a = op(a, a)
		n /= 2
	}
	n /= 2
	if n == 0 {
		return a
	}
	r := a
	a = op(a, a)
	for {
		if n%2 == 1 {
			r = op(r, a)
			if n == 1 {
				return r
			}
		}
		a = op(a, a)
		n /= 2
	}
}
