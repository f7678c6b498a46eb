package main

import "github.com/mcoot/piranhas-client/internal/cli"

func main() {
	cli.Execute()
}
