// Package cli contains the command-line interface.
package cli

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/smoynes/unileq/internal/log"
)

// Command represents an action the CLI can take. unileq has exactly two:
// the default run command and help, but the interface still separates flag
// parsing, description, usage, and execution the way a CLI with many
// sub-commands would, since that's the shape the logger/output plumbing is
// built around.
type Command interface {
	// FlagSet returns the set of options the command accepts.
	FlagSet() *flag.FlagSet

	// Description returns a brief description of the command's function.
	Description() string

	// Usage prints detailed command documentation.
	Usage(out io.Writer) error

	// Run executes the command with arguments. Command output should be
	// written to out. It returns a process exit code.
	Run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) int
}

// Commander runs the CLI's default command, falling back to help.
type Commander struct {
	ctx context.Context
	log *log.Logger

	run  Command
	help Command
}

// New creates a new Commander that can start commands.
func New(ctx context.Context) *Commander {
	return &Commander{
		ctx: ctx,
	}
}

// Execute runs the default command with args, unless args ask for help
// (-h, --help, or "help" as the first word), in which case help runs
// instead.
func (cli *Commander) Execute(args []string) int {
	if len(args) > 0 {
		switch args[0] {
		case "-h", "--help", "help":
			return cli.help.Run(cli.ctx, args[1:], os.Stdout, cli.log)
		}
	}

	fs := cli.run.FlagSet()

	if err := fs.Parse(args); err != nil {
		cli.log.Error("parse error", "err", err)
		return 2
	}

	return cli.run.Run(cli.ctx, fs.Args(), os.Stdout, cli.log)
}

// WithRun configures the command Execute runs by default.
func (cli *Commander) WithRun(cmd Command) *Commander {
	cli.run = cmd
	return cli
}

// WithHelp configures the help command.
func (cli *Commander) WithHelp(cmd Command) *Commander {
	cli.help = cmd
	return cli
}

// WithLogger configures the logger for the CLI. Logs are written to out, to
// leave os.Stdout free for the running program's own output.
func (cli *Commander) WithLogger(out *os.File) *Commander {
	logger := log.NewFormattedLogger(out)
	cli.log = logger

	log.SetDefault(logger)

	return cli
}

// Type aliases from std lib.
type (
	Flag    = flag.Flag
	FlagSet = flag.FlagSet
)
