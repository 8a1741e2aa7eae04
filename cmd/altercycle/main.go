package main

import (
	"os"

	"github.com/roach88/altercycle/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
