package main

import (
	"os"

	"github.com/ericlevine/qrscan/cmd/qrscan/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
