package main

import (
	"os"

	"github.com/ucpcal/ucpcal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
