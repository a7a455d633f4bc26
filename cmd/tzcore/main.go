// Command tzcore resolves instants and local date-times against zone
// definitions.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/tzcore/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
