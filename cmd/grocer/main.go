package main

import (
	"os"

	"github.com/msto63/grocer/cmd/grocer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
