package main

import (
	"os"

	"github.com/iconplus/catalog/cmd/catalogctl/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
