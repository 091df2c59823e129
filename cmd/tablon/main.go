package main

import (
	"os"

	"github.com/tablon/tablon/cmd/tablon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
