package main

import "github.com/discontent/discontent/cmd"

func main() {
	cmd.Execute()
}
