package main

import "github.com/andrescamacho/redcycle-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
