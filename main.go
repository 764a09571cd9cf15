package main

import (
	"os"

	"github.com/conneroisu/docgrid/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
