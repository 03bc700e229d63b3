package main

import (
	"os"

	"github.com/henri123lemoine/arbor/cmd/arbor/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
