package main

import (
	"fmt"
	"os"
	"path/filepath"
)

var (
	// Version is the human-readable version, set at build time
	Version = "unknown"

	// GitCommit hash, set at compile time
	GitCommit = ""
)

func printVersion() {
	fmt.Printf("%s version %s\n", filepath.Base(os.Args[0]), Version)
	if GitCommit != "" {
		fmt.Printf("commit: %s\n", GitCommit)
	}
	os.Exit(0)
}
