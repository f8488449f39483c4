package main

import "github.com/dmitrijs2005/bunfight/internal/client/cli"

func main() {
	cli.Execute()
}
