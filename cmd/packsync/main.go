package main

import (
	"os"

	"github.com/packsync/packsync/cmd/packsync/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
