// Command cbc resolves, checks and lowers C-like syntax trees.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/cbc/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	// Commands report their own failures on stdout. Anything else, such as
	// a bad flag, is printed here.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
