package main

import (
	"os"

	"github.com/msto63/clidispatch/cmd/clidispatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
