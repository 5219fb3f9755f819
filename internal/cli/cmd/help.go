package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/smoynes/unileq/internal/cli"
	"github.com/smoynes/unileq/internal/log"
)

type help struct {
	run cli.Command
}

var _ cli.Command = (*help)(nil)

func (help) Description() string {
	return "display usage"
}

func (h help) FlagSet() *cli.FlagSet {
	return flag.NewFlagSet("help", flag.ExitOnError)
}

func (h help) Run(_ context.Context, _ []string, out io.Writer, _ *log.Logger) int {
	if err := h.Usage(out); err != nil {
		return 1
	}

	return 0
}

func (h *help) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `unileq is an interpreter and assembler for the unileq one-instruction machine.

Usage:

        unileq [-timeout duration] [file]
`)
	if err != nil {
		return err
	}

	return h.run.Usage(out)
}

// Help returns the CLI's help command, which describes run, the only
// other command there is.
func Help(run cli.Command) *help {
	return &help{run: run}
}
