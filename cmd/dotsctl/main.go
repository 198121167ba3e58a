package main

import "github.com/mcoot/dotsgame/internal/cli"

func main() {
	cli.Execute()
}
