package main

import (
	"os"

	"github.com/optikforge/zmxlink/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
