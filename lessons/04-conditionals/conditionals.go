// ---
// title: Conditionals
// summary: Branching with if, else, and switch.
// tags: [basics, control-flow]
// ---

// Conditions in Go need no parentheses, but the braces are mandatory.
// An `if` may start with a short statement whose variables are scoped to
// the branch.
package main

import "fmt"

func classify(n int) string {
	if n < 0 {
		return "negative"
	} else if n == 0 {
		return "zero"
	}
	return "positive"
}

func main() {
	fmt.Println(classify(-5))
	fmt.Println(classify(0))
	fmt.Println(classify(42))

	// The init statement keeps v out of the enclosing scope.
	if v := len("weft"); v > 3 {
		fmt.Println("long:", v)
	}

	// switch compares against each case in order and does not fall
	// through. A case may list several values.
	switch day := "saturday"; day {
	case "saturday", "sunday":
		fmt.Println("weekend")
	default:
		fmt.Println("weekday")
	}

	// A switch with no expression is a cleaner way to write long
	// if/else chains.
	x := 7
	switch {
	case x < 10:
		fmt.Println("small")
	case x < 100:
		fmt.Println("medium")
	default:
		fmt.Println("large")
	}
}

// Output:
// negative
// zero
// positive
// long: 4
// weekend
// small
