// ---
// title: Functions
// summary: Multiple return values and variadic parameters.
// tags: [basics]
// ---

// Go functions are declared with the `func` keyword. Unlike many languages
// they can return several values at once, which is how Go expresses what
// other languages call tuples.
package main

import "fmt"

// divmod returns the quotient and the remainder in one call. Callers
// unpack both values with a multiple assignment.
func divmod(a, b int) (int, int) {
	return a / b, a % b
}

// A variadic function accepts any number of trailing arguments. Inside the
// function they arrive as a slice.
func sum(nums ...int) int {
	total := 0
	for _, n := range nums {
		total += n
	}
	return total
}

func main() {
	q, r := divmod(17, 5)
	fmt.Println(q, r)

	// The blank identifier discards a value you do not need.
	_, r = divmod(10, 3)
	fmt.Println(r)

	fmt.Println(sum(1, 2, 3))

	// An existing slice is expanded into variadic arguments with `...`.
	primes := []int{2, 3, 5, 7}
	fmt.Println(sum(primes...))
}

// Output:
// 3 2
// 1
// 6
// 17
