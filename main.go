package main

import "github.com/tranvictor/narrator/cmd"

func main() {
	cmd.Execute()
}
