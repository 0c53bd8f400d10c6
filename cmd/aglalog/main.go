// Package main is the entry point for the aglalog CLI.
package main

import (
	"os"

	"github.com/gxo-labs/aglalog/cmd/aglalog/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
