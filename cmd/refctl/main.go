package main

import (
	"fmt"
	"os"

	"github.com/rawbytedev/cref/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "refctl: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
