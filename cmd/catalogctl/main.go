package main

import "catalog-api/cmd/catalogctl/commands"

func main() {
	commands.Execute()
}
