package main

import "github.com/tiletally/tiletally-go/internal/cli"

func main() {
	cli.Execute()
}
