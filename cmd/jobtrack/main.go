package main

import (
	"os"

	"github.com/martijn/jobtrack/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
