// Command colorfall plays, renders and soak-tests the colour-adjacency
// falling-block puzzle.
package main

func main() {
	Execute()
}
