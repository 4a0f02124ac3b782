package main

import "github.com/promptduel/promptduel-go/internal/cli"

func main() {
	cli.Execute()
}
