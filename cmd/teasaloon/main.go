package main

import "github.com/johnwards/teasaloon/cmd/teasaloon/commands"

func main() {
	commands.Execute()
}
