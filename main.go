package main

import (
	"os"

	"github.com/rahulj/mockmate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
