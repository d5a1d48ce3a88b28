package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/YoshitsuguKoike/propdoc/internal/interface/cli"
)

func main() {
	if err := cli.NewRoot().Execute(); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintf(os.Stderr, "An error occurred: %v\n", err)
		}
		os.Exit(1)
	}
}
