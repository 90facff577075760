// ---
// title: Closures
// summary: Anonymous functions that capture their surrounding variables.
// tags: [basics, functions]
// ---

// An anonymous function can reference variables from the scope it was
// created in. The function and its captured variables together form a
// closure: the variables live on as long as the function does.
package main

import "fmt"

// counter returns a function that increments and returns its own private
// count. Each call to counter creates a fresh count variable.
func counter() func() int {
	count := 0
	return func() int {
		count++
		return count
	}
}

// Closures also make lightweight function factories. adder binds n into
// the returned function.
func adder(n int) func(int) int {
	return func(x int) int {
		return x + n
	}
}

func main() {
	next := counter()
	fmt.Println(next())
	fmt.Println(next())
	fmt.Println(next())

	// A second counter has its own independent state.
	other := counter()
	fmt.Println(other())

	addTen := adder(10)
	fmt.Println(addTen(5))
}

// Output:
// 1
// 2
// 3
// 1
// 15
