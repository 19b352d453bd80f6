package main

import "romwiki/internal/cli"

func main() {
	cli.Execute()
}
