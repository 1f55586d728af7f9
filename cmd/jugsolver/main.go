// Command jugsolver serves and solves the two-jug water-measuring puzzle.
package main

import (
	"errors"
	"fmt"
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run0(os.Args[1:]))
}

func run0(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "jugsolver: %v\n", err)
		}
		return 1
	}
	return 0
}
