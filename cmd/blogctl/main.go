package main

import "github.com/sohelr/goblog/cmd/blogctl/commands"

func main() {
	commands.Execute()
}
