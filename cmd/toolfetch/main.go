package main

import "toolfetch/internal/cli"

func main() {
	cli.Execute()
}
