package main

import "github.com/Absolentia/aif-core/internal/cli"

func main() {
	cli.Execute()
}
