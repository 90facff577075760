// ---
// title: Arrays And Slices
// summary: Fixed-size arrays, flexible slices, and the backing array they share.
// tags: [basics, collections]
// ---

// An array has a fixed length that is part of its type. Slices are the
// everyday collection type: a view onto an underlying array that can grow
// with append.
package main

import "fmt"

func main() {
	// Arrays are zero-valued on declaration.
	var a [3]int
	a[0] = 1
	fmt.Println(a)

	// The compiler counts the elements for a [...] literal.
	primes := [...]int{2, 3, 5, 7, 11}
	fmt.Println(len(primes), primes)

	// Slicing an array gives a view, not a copy.
	s := primes[1:4]
	fmt.Println(s)

	// Writing through the slice is visible in the array.
	s[0] = 30
	fmt.Println(primes)

	// append grows a slice, reallocating when needed.
	letters := []string{"a", "b"}
	letters = append(letters, "c")
	fmt.Println(letters)

	// copy transfers elements between slices and reports how many.
	dst := make([]int, 2)
	n := copy(dst, []int{9, 8, 7})
	fmt.Println(n, dst)
}

// Output:
// [1 0 0]
// 5 [2 3 5 7 11]
// [3 5 7]
// [2 30 5 7 11]
// [a b c]
// 2 [9 8]
