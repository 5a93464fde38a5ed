package main

import "getatoms/internal/cli"

func main() {
	cli.Execute()
}
