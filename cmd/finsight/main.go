package main

import (
	"os"

	"github.com/finsight/scenario-engine/cmd/finsight/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
