// ---
// title: Errors
// summary: Error values, wrapping, and recovering from panics.
// tags: [basics, errors]
// ---

// Go reports failure with plain values of the built-in `error` type,
// returned as the last result of a function. There are no exceptions for
// ordinary failures; the caller inspects the error explicitly.
package main

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors are package-level values callers can compare against.
var ErrNegative = errors.New("negative input")

func sqrt(x float64) (float64, error) {
	if x < 0 {
		return 0, ErrNegative
	}
	return math.Sqrt(x), nil
}

// Truly exceptional conditions, like dividing by zero or indexing past the
// end of a slice, panic at runtime. A deferred call to recover can turn a
// panic back into an ordinary error at an api boundary.
func safeDivide(a, b int) (q int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered: %v", r)
		}
	}()
	return a / b, nil
}

func at(s []int, i int) (v int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered: %v", r)
		}
	}()
	return s[i], nil
}

func main() {
	v, _ := sqrt(9)
	fmt.Println(v)

	_, err := sqrt(-1)
	fmt.Println(err)

	// %w wraps an error with context; errors.Is still finds the
	// sentinel inside the chain.
	wrapped := fmt.Errorf("compute: %w", err)
	fmt.Println(wrapped)
	fmt.Println(errors.Is(wrapped, ErrNegative))

	fmt.Println(safeDivide(10, 2))
	fmt.Println(safeDivide(1, 0))
	fmt.Println(at([]int{1, 2, 3}, 5))
}

// Output:
// 3
// negative input
// compute: negative input
// true
// 5 <nil>
// 0 recovered: runtime error: integer divide by zero
// 0 recovered: runtime error: index out of range [5] with length 3
