package main

import "github.com/lcrosetto/midicanon/cmd"

func main() {
	cmd.Execute()
}
