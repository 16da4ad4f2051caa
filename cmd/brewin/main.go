// Command brewin is the CLI entry point: it wires the cobra command
// tree defined in cmd/brewin/cmd to the process's args and exit code.
package main

import (
	"fmt"
	"os"

	"github.com/brewin-lang/brewin/cmd/brewin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
