package main

import (
	"os"

	"github.com/lugondev/goatswap-cli/cmd/goatswap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
