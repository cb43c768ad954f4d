package main

import "pomo/cmd"

func main() {
	cmd.Execute()
}
