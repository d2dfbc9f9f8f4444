package main

import (
	"os"

	"github.com/baf-labs/profilefix/cmd/profilefix/commands"
)

func main() {
	if err := commands.RootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
