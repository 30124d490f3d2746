package main

import "github.com/portfolio/internal/cli"

func main() {
	cli.Execute()
}
