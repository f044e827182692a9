package main

import (
	"os"

	"edufair/cmd/fairctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
