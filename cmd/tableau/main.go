// Command tableau inspects YAML scene files: it prints the allocated actor
// tree, the damage produced by moving actors, and the actor under a point.
package main

func main() {
	Execute()
}
