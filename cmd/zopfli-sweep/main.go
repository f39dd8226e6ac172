// Package main provides the zopfli-sweep CLI tool for measuring how zopfli's
// iteration count trades compression time for output size.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
