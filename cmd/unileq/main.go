// cmd/unileq is the command-line interface to unileq, a one-instruction
// virtual machine and its assembler.
package main

import (
	"context"
	"os"

	"github.com/smoynes/unileq/internal/cli"
	"github.com/smoynes/unileq/internal/cli/cmd"
)

// Entry point.
func main() {
	run := cmd.Run()

	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithRun(run).
			WithHelp(cmd.Help(run)).
			Execute(os.Args[1:])

	os.Exit(result)
}
