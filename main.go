package main

import (
	"os"

	"github.com/qcri/qfmark/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
