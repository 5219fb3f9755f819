/*
Package machine implements the unileq execution core: a single primitive
repeated until the program halts.

Each step reads three words -- A, B, C -- from memory at the instruction
pointer, computes mB (the value of B, with the input, clock-rate and clock
addresses read from the host side instead of memory), then resolves A: an ordinary
address is decremented by mB and branches to C if the result would have
been non-positive; a reserved A dispatches to a host effect (halt, output,
sleep) or, for the rest of the reserved range, is treated as an ordinary
write target reachable only through the memory-growth path.

There are no registers, no instruction formats, and no decode step in the
usual sense -- the "opcode" is the shape of A, not a field extracted from
it.
*/
package machine

import (
	"github.com/smoynes/unileq/internal/log"
	"github.com/smoynes/unileq/internal/mem"
	"github.com/smoynes/unileq/internal/word"
)

// Environment is the host's side of the six reserved-address effects: byte
// I/O and timing. Routing these through an interface, rather than baking
// process-global stdin/stdout/clock access into the machine, keeps Step
// deterministic and testable: a test environment can script input and
// capture output without touching the real terminal.
type Environment interface {
	// ReadByte returns the next input byte. ok is false at end of input;
	// the machine substitutes a conventional sentinel value rather than
	// failing, since EOF's value is otherwise implementation-defined.
	ReadByte() (b byte, ok bool)

	// WriteByte emits a byte to the host output stream. The machine gives
	// the running program no way to observe a write failure, so
	// WriteByte does not return an error; an Environment that wraps a
	// failing writer should swallow the error itself.
	WriteByte(b byte)

	// NowTicks returns the current wall-clock time as seconds since the
	// epoch in the high 32 bits and a sub-second fraction in the low 32.
	NowTicks() word.Word

	// Sleep pauses for ticks/2^32 seconds.
	Sleep(ticks word.Word)
}

// RunState is the terminal or in-progress state of a Machine.
type RunState int

// Run states. ParserError and MemoryError are absorbing: once set, further
// Step calls are refused.
const (
	Running RunState = iota
	Complete
	ParserError
	MemoryError
)

//go:generate go run golang.org/x/tools/cmd/stringer -type RunState -output state_string.go

// Machine is the interpreter's state: an instruction pointer, the memory it
// executes against, the host environment it talks to, and the run state
// that governs whether Step will do anything at all.
type Machine struct {
	IP    word.Word
	State RunState
	Err   error // detail for ParserError or MemoryError; nil otherwise.

	mem *mem.Memory
	env Environment
	log *log.Logger
}

// OptionFn configures a Machine at construction.
type OptionFn func(*Machine)

// WithLogger overrides the machine's logger.
func WithLogger(l *log.Logger) OptionFn {
	return func(m *Machine) { m.log = l }
}

// WithIP sets the initial instruction pointer. Programs conventionally
// start at address 0; this exists for resuming a machine loaded from saved
// state in tests and tools.
func WithIP(ip word.Word) OptionFn {
	return func(m *Machine) { m.IP = ip }
}

// New creates a Machine ready to execute mem starting at address 0, talking
// to env for host I/O.
func New(memory *mem.Memory, env Environment, opts ...OptionFn) *Machine {
	m := &Machine{
		State: Running,
		mem:   memory,
		env:   env,
		log:   log.DefaultLogger(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Memory returns the machine's memory image, for inspection by callers
// (tests, tools) after a run completes.
func (m *Machine) Memory() *mem.Memory {
	return m.mem
}

func (m *Machine) String() string {
	return "IP: " + m.IP.String() + " STATE: " + m.State.String()
}

// LogValue renders the machine as a structured group for slog, rather than
// spilling its fields as separate top-level attributes.
func (m *Machine) LogValue() log.Value {
	return log.GroupValue(
		log.String("IP", m.IP.String()),
		log.String("STATE", m.State.String()),
	)
}

// fail transitions the machine to MemoryError, recording the cause.
func (m *Machine) fail(err error) {
	m.State = MemoryError
	m.Err = err
}
