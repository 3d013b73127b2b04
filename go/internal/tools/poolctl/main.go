package main

import (
	"os"

	"github.com/mcdev12/pickpool/go/internal/tools/poolctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
