package main

import (
	"os"

	"geoheat/cmd/geoheat/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
