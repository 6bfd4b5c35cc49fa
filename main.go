package main

import "github.com/scrollwise/mdbook-note/cmd"

func main() {
	cmd.Execute()
}
