// ---
// title: Sets
// summary: Sets expressed as maps with empty struct values.
// tags: [basics, collections]
// ---

// Go has no built-in set type. The idiom is a map whose values are the
// empty struct, which occupies no memory; membership is a map lookup.
package main

import (
	"fmt"
	"sort"
)

func newSet(items ...int) map[int]struct{} {
	set := make(map[int]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// members returns the elements in sorted order, since map iteration
// order is random.
func members(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for item := range set {
		out = append(out, item)
	}
	sort.Ints(out)
	return out
}

func intersect(a, b map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{})
	for item := range a {
		if _, ok := b[item]; ok {
			out[item] = struct{}{}
		}
	}
	return out
}

func main() {
	primes := newSet(2, 3, 5, 7, 11, 13)

	_, ok := primes[7]
	fmt.Println(ok)
	_, ok = primes[9]
	fmt.Println(ok)

	// Adding and removing are plain map operations.
	primes[17] = struct{}{}
	delete(primes, 2)
	fmt.Println(members(primes))

	odds := newSet(1, 3, 5, 7, 9)
	fmt.Println(members(intersect(primes, odds)))
}

// Output:
// true
// false
// [3 5 7 11 13 17]
// [3 5 7]
