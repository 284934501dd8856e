package main

import (
	"quill/internal/cli"
)

func main() {
	cli.Execute()
}
