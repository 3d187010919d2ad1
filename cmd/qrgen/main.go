package main

import (
	"os"

	"github.com/dmitrymomot/qrgen/cmd/qrgen/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
