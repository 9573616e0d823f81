package main

import (
	"os"

	"github.com/rustyeddy/equitysim/cmd/eqsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
