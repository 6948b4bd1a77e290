package main

import "github.com/Cable-s/PianoGame/cmd"

func main() {
	cmd.Execute()
}
