package main

import (
	"fmt"
	"os"

	"github.com/dcmgo/dcmgo/cmd/dcmctl/internal/cli"
)

// version, commit, and date are set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := cli.Run(version, commit, date); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
