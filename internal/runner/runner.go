/*
Package runner drives a machine.Machine for a bounded or unbounded number of
steps, the way a host embedding the interpreter -- a CLI, a test, a REPL --
actually calls it: "execute up to N steps," rather than "run forever."

Because a Machine's IP and State live on the Machine itself, Run is trivially
resumable: calling Run again against the same Machine after a budget is
exhausted continues exactly where the previous call left off.
*/
package runner

import (
	"context"
	"math"

	"github.com/smoynes/unileq/internal/log"
	"github.com/smoynes/unileq/internal/machine"
)

// Unbounded is the step budget that runs a machine to completion (or
// cancellation) instead of stopping after a fixed count.
const Unbounded uint32 = math.MaxUint32

// runner carries Run's own configuration, distinct from the Machine it
// drives -- the logger here narrates start/stop/cancel, while the Machine's
// own logger narrates individual steps.
type runner struct {
	log *log.Logger
}

// OptionFn configures a Run call.
type OptionFn func(*runner)

// WithLogger overrides the runner's logger.
func WithLogger(l *log.Logger) OptionFn {
	return func(r *runner) { r.log = l }
}

// Run steps m up to steps times (pass Unbounded for no limit), checking ctx
// for cancellation between each step. It returns the number of steps
// actually executed; with Unbounded, that count wraps modulo 2^32.
//
// Run stops without error as soon as m leaves the Running state (Complete,
// ParserError, or MemoryError) or once the step budget is spent; in the
// latter case m is left Running, and a later Run call against the same
// Machine resumes mid-program. Run returns ctx.Err() if ctx is cancelled,
// and propagates whatever error m.Step returns, in both cases leaving the
// already-executed count intact.
func Run(ctx context.Context, m *machine.Machine, steps uint32, opts ...OptionFn) (uint32, error) {
	r := &runner{log: log.DefaultLogger()}

	for _, opt := range opts {
		opt(r)
	}

	r.log.Info("START", log.Group("STATE", m), "BUDGET", steps)

	var executed uint32

	for steps == Unbounded || executed < steps {
		select {
		case <-ctx.Done():
			r.log.Warn("CANCELLED", log.Group("STATE", m))
			return executed, ctx.Err()
		default:
		}

		if m.State != machine.Running {
			break
		}

		if err := m.Step(); err != nil {
			r.log.Error("HALTED (error)", "ERR", err, log.Group("STATE", m))
			return executed, err
		}

		executed++
	}

	r.log.Info("STOPPED", log.Group("STATE", m), "EXECUTED", executed)

	return executed, nil
}
