package main

import (
	"os"

	"mercauca/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
