package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/willkill07/proctest/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		// Run() always returns an ExitCodeError on a completed grading
		// run; only an operational failure (bad flags, unreadable config)
		// surfaces as a different error here.
		var exitErr cmd.ExitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
