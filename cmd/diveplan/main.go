package main

import (
	"os"

	"github.com/yanqian/diveplanner/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
