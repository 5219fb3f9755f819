package machine

// exec.go implements the single instruction cycle: fetch three words,
// resolve the right-hand operand, then dispatch on the left-hand one.

import (
	"errors"
	"fmt"

	"github.com/smoynes/unileq/internal/log"
	"github.com/smoynes/unileq/internal/word"
)

// ErrNotRunning is returned by Step when the machine is already in an
// absorbing state (Complete, ParserError, or MemoryError).
var ErrNotRunning = errors.New("machine: not running")

// clockRate is the constant value read when B addresses the clock-rate
// sink: 2^32 ticks per second.
const clockRate = word.Word(1) << 32

// Step executes one instruction to completion: it fetches A, B, and C,
// computes mB, resolves A's effect, and updates IP and State accordingly.
// It returns an error for a growth failure, or ErrNotRunning if the machine
// is not Running; Step never returns an error for a clean halt -- check
// State instead.
func (m *Machine) Step() error {
	if m.State != Running {
		return fmt.Errorf("step: %w", ErrNotRunning)
	}

	a := m.mem.Get(m.IP)
	b := m.mem.Get(m.IP + 1)
	c := m.mem.Get(m.IP + 2)
	m.IP += 3

	mb := m.readOperand(b)

	switch {
	case a.Ordinary():
		ma := m.mem.Get(a)
		if ma <= mb {
			m.IP = c
		}

		if err := m.mem.Set(a, ma-mb); err != nil {
			m.fail(err)
			return err
		}

	case a == word.SinkHalt:
		m.IP = c
		m.State = Complete

	case a == word.SinkOutput:
		m.IP = c
		m.env.WriteByte(byte(mb))

	case a == word.SinkSleep:
		m.IP = c
		m.env.Sleep(mb)

	default:
		// Reserved, but none of the three named write-side sinks: an
		// ordinary write through the growth path, per the reserved-range
		// layout (IO_BASE..2^64-7 read as zero and are writeable).
		m.IP = c

		if err := m.mem.Set(a, 0-mb); err != nil {
			m.fail(err)
			return err
		}
	}

	m.log.Debug("executed step", log.Group("STATE", m), "A", a, "B", b, "C", c, "mB", mb)

	return nil
}

// readOperand computes mB, the right-hand value of B, per the reserved-range
// read semantics: an ordinary address reads memory; input/clock sinks read
// from the host environment; every other reserved address reads as zero.
func (m *Machine) readOperand(b word.Word) word.Word {
	switch {
	case b.Ordinary():
		return m.mem.Get(b)

	case b == word.SinkInput:
		by, ok := m.env.ReadByte()
		if !ok {
			return word.Neg(1)
		}

		return word.Word(by)

	case b == word.SinkClockRate:
		return clockRate

	case b == word.SinkClockTime:
		return m.env.NowTicks()

	default:
		return 0
	}
}
