package main

import "aide/internal/cli"

func main() {
	cli.Execute()
}
