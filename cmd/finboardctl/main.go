package main

import (
	"os"

	"finboard/internal/cli"
	"finboard/internal/commands"
)

func main() {
	cli.LoadEnvFile()
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
