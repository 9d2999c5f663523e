// Command wadctl inspects and edits WAD archives from the command line.
package main

func main() {
	execute()
}
