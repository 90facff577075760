// ---
// title: Maps
// summary: Building, querying, and iterating over maps.
// tags: [basics, collections]
// ---

// A map associates keys with values. Iteration order is deliberately
// random, so programs that need a stable order sort the keys first.
package main

import (
	"fmt"
	"sort"
)

func main() {
	// Build a map of squares the way you would build a comprehension.
	squares := make(map[int]int)
	for i := 1; i <= 5; i++ {
		squares[i] = i * i
	}

	keys := make([]int, 0, len(squares))
	for k := range squares {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		fmt.Println(k, squares[k])
	}

	// The two-value lookup reports whether a key is present. A missing
	// key yields the zero value, not an error.
	v, ok := squares[3]
	fmt.Println(v, ok)
	_, ok = squares[10]
	fmt.Println(ok)

	delete(squares, 1)
	fmt.Println(len(squares))
}

// Output:
// 1 1
// 2 4
// 3 9
// 4 16
// 5 25
// 9 true
// false
// 4
