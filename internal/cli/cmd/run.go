package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/smoynes/unileq/internal/asm"
	"github.com/smoynes/unileq/internal/cli"
	"github.com/smoynes/unileq/internal/console"
	"github.com/smoynes/unileq/internal/log"
	"github.com/smoynes/unileq/internal/machine"
	"github.com/smoynes/unileq/internal/runner"
)

// demoSource is the program run when no file argument is given, ported
// from the reference interpreter's own zero-argument example: a
// self-modifying loop that prints the fixed usage string by walking a
// pointer through a literal byte table.
const demoSource = `
loop: len  ?    neg              # Decrement [len] by the constant 1 (the word at ?). Branch to neg once [len]<=0.
      0-2  text ?+1              # Print the current letter, then go on to the next instruction.
      ?-2  neg  loop             # Use [neg]'s huge value to bump the text pointer, then loop.

text: 85  115 97  103 101 58  32  # Usage:
      117 110 105 108 101 113 32  # unileq
      102 105 108 101 46  117 110 108 10  # file.unl\n

neg:  0-1
len:  len-text
`

// Run returns the CLI's default command: assemble and run either the
// embedded demo program or a named source file.
func Run() cli.Command {
	return new(runCmd)
}

type runCmd struct {
	timeout time.Duration
}

func (runCmd) Description() string {
	return "assemble and run a unileq program"
}

func (runCmd) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `unileq [-timeout duration] [file]

Assemble and run a unileq source file. With no file argument, runs the
embedded demonstration program, which prints "Usage: unileq file.unl".

Exit status is 0 on a clean halt, 2 if the source failed to assemble, and
3 on a runtime memory error or an elapsed -timeout.`)

	return err
}

func (r *runCmd) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("unileq", flag.ExitOnError)
	fs.DurationVar(&r.timeout, "timeout", 0, "wall-clock `limit` on execution, 0 for none")

	return fs
}

// Run loads source (the embedded demo, or the named file), assembles it,
// and executes it to completion.
func (r *runCmd) Run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) int {
	source, err := loadSource(args)
	if err != nil {
		logger.Error("error reading source", "err", err)
		return 2
	}

	result, assembleErr := asm.Assemble(source)

	env := console.NewBuffered(os.Stdin, out)
	m := machine.NewFromAssembly(result, assembleErr, env, machine.WithLogger(logger))

	if r.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if m.State == machine.Running {
		if _, err := runner.Run(ctx, m, runner.Unbounded); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			logger.Error("runner error", "err", err)
		}
	}

	switch m.State {
	case machine.Complete:
		return 0
	case machine.ParserError:
		fmt.Fprintln(os.Stderr, m.Err)
		return 2
	case machine.MemoryError:
		fmt.Fprintln(os.Stderr, m.Err)
		return 3
	default: // still Running: the timeout elapsed before completion.
		fmt.Fprintln(os.Stderr, "unileq: timed out before the program halted")
		return 3
	}
}

func loadSource(args []string) (string, error) {
	if len(args) == 0 {
		return demoSource, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}

	return string(data), nil
}
