// ---
// title: Loops
// summary: The for statement in its three shapes, plus break and continue.
// tags: [basics, control-flow]
// ---

// Go has a single looping construct, `for`. With all three clauses it is
// the classic counted loop; with just a condition it behaves like a while
// loop; with a `range` clause it walks a collection.
package main

import "fmt"

func main() {
	for i := 1; i <= 3; i++ {
		fmt.Println(i)
	}

	// Condition-only form: double n until it passes 100.
	n := 1
	for n < 100 {
		n *= 2
	}
	fmt.Println(n)

	// range over a slice yields the index and the element.
	words := []string{"the", "quick", "fox"}
	for i, w := range words {
		fmt.Println(i, w)
	}

	// continue skips to the next iteration, break leaves the loop.
	total := 0
	for i := 1; ; i++ {
		if i > 10 {
			break
		}
		if i%2 != 0 {
			continue
		}
		total += i
	}
	fmt.Println(total)
}

// Output:
// 1
// 2
// 3
// 128
// 0 the
// 1 quick
// 2 fox
// 30
