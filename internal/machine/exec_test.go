package machine

import (
	"errors"
	"testing"

	"github.com/smoynes/unileq/internal/mem"
	"github.com/smoynes/unileq/internal/word"
)

// testEnv is a scripted Environment: input is consumed from a queue, output
// and sleep/clock calls are recorded for assertions.
type testEnv struct {
	input  []byte
	output []byte
	slept  []word.Word
	ticks  word.Word
}

func (e *testEnv) ReadByte() (byte, bool) {
	if len(e.input) == 0 {
		return 0, false
	}

	b := e.input[0]
	e.input = e.input[1:]

	return b, true
}

func (e *testEnv) WriteByte(b byte)         { e.output = append(e.output, b) }
func (e *testEnv) NowTicks() word.Word      { return e.ticks }
func (e *testEnv) Sleep(ticks word.Word)    { e.slept = append(e.slept, ticks) }

func setMem(tt *testing.T, m *mem.Memory, addr word.Word, vals ...word.Word) {
	tt.Helper()

	for i, v := range vals {
		if err := m.Set(addr+word.Word(i), v); err != nil {
			tt.Fatalf("set %d: %v", addr+word.Word(i), err)
		}
	}
}

func TestMachine_Step_OrdinaryBranchesWhenLessOrEqual(tt *testing.T) {
	tt.Parallel()

	m0 := mem.New()
	// A=10, B=11, C=9 (branch target); mem[10]=5 <= mem[11]=5 so the
	// branch is taken and mem[10] becomes 0.
	setMem(tt, m0, 0, word.Word(10), word.Word(11), word.Word(9))
	setMem(tt, m0, 10, 5)
	setMem(tt, m0, 11, 5)

	env := &testEnv{}
	m := New(m0, env)

	if err := m.Step(); err != nil {
		tt.Fatalf("step: %v", err)
	}

	if m.IP != 9 {
		tt.Errorf("IP: want 9, got %s", m.IP)
	}

	if got := m0.Get(10); got != 0 {
		tt.Errorf("mem[10]: want 0, got %s", got)
	}
}

func TestMachine_Step_OrdinaryFallsThroughWhenGreater(tt *testing.T) {
	tt.Parallel()

	m0 := mem.New()
	setMem(tt, m0, 0, word.Word(10), word.Word(11), word.Word(9))
	setMem(tt, m0, 10, 5)
	setMem(tt, m0, 11, 2)

	env := &testEnv{}
	m := New(m0, env)

	if err := m.Step(); err != nil {
		tt.Fatalf("step: %v", err)
	}

	if m.IP != 3 {
		tt.Errorf("IP: want 3 (fell through), got %s", m.IP)
	}

	if got := m0.Get(10); got != 3 {
		tt.Errorf("mem[10]: want 3, got %s", got)
	}
}

func TestMachine_Step_Halt(tt *testing.T) {
	tt.Parallel()

	m0 := mem.New()
	setMem(tt, m0, 0, word.SinkHalt, word.Word(0), word.Word(99))

	m := New(m0, &testEnv{})

	if err := m.Step(); err != nil {
		tt.Fatalf("step: %v", err)
	}

	if m.State != Complete {
		tt.Errorf("state: want Complete, got %s", m.State)
	}

	if m.IP != 99 {
		tt.Errorf("IP: want 99, got %s", m.IP)
	}
}

func TestMachine_Step_Output(tt *testing.T) {
	tt.Parallel()

	m0 := mem.New()
	setMem(tt, m0, 0, word.SinkOutput, word.Word(10), word.Word(3))
	setMem(tt, m0, 10, word.Word('!'))

	env := &testEnv{}
	m := New(m0, env)

	if err := m.Step(); err != nil {
		tt.Fatalf("step: %v", err)
	}

	if len(env.output) != 1 || env.output[0] != '!' {
		tt.Errorf("output: want [!], got %v", env.output)
	}

	if m.IP != 3 {
		tt.Errorf("IP: want 3, got %s", m.IP)
	}
}

func TestMachine_Step_Sleep(tt *testing.T) {
	tt.Parallel()

	m0 := mem.New()
	setMem(tt, m0, 0, word.SinkSleep, word.Word(10), word.Word(3))
	setMem(tt, m0, 10, word.Word(42))

	env := &testEnv{}
	m := New(m0, env)

	if err := m.Step(); err != nil {
		tt.Fatalf("step: %v", err)
	}

	if len(env.slept) != 1 || env.slept[0] != 42 {
		tt.Errorf("slept: want [42], got %v", env.slept)
	}
}

func TestMachine_Step_ReservedDefaultIsOrdinaryWrite(tt *testing.T) {
	tt.Parallel()

	m0 := mem.New()
	// An address in the reserved range with no named sink: treated as an
	// ordinary write target via the growth path, value is 0-mB. A non-zero
	// value that far out cannot be backed, so the write fails to grow.
	setMem(tt, m0, 0, word.IOBase+1, word.Word(10), word.Word(3))
	setMem(tt, m0, 10, word.Word(7))

	m := New(m0, &testEnv{})

	err := m.Step()

	var growthErr *mem.GrowthError
	if !errors.As(err, &growthErr) {
		tt.Fatalf("step: want *mem.GrowthError, got %v", err)
	}

	if growthErr.Addr != word.IOBase+1 {
		tt.Errorf("GrowthError.Addr: want %s, got %s", word.IOBase+1, growthErr.Addr)
	}

	if m.State != MemoryError {
		tt.Errorf("state: want MemoryError, got %s", m.State)
	}
}

func TestMachine_Step_ReadOperand(tt *testing.T) {
	tt.Parallel()

	tt.Run("ordinary", func(tt *testing.T) {
		m0 := mem.New()
		setMem(tt, m0, 0, word.Word(10), word.Word(11), word.Word(3))
		setMem(tt, m0, 10, 1)
		setMem(tt, m0, 11, 4)

		m := New(m0, &testEnv{})

		if err := m.Step(); err != nil {
			tt.Fatalf("step: %v", err)
		}

		if got := m0.Get(10); got != word.Neg(3) {
			tt.Errorf("mem[10]: want %s, got %s", word.Neg(3), got)
		}
	})

	tt.Run("input", func(tt *testing.T) {
		m0 := mem.New()
		setMem(tt, m0, 0, word.Word(10), word.SinkInput, word.Word(3))
		setMem(tt, m0, 10, 100)

		env := &testEnv{input: []byte{5}}
		m := New(m0, env)

		if err := m.Step(); err != nil {
			tt.Fatalf("step: %v", err)
		}

		if got := m0.Get(10); got != 100-5 {
			tt.Errorf("mem[10]: want %s, got %s", 100-word.Word(5), got)
		}
	})

	tt.Run("input at EOF", func(tt *testing.T) {
		m0 := mem.New()
		setMem(tt, m0, 0, word.Word(10), word.SinkInput, word.Word(3))
		setMem(tt, m0, 10, 100)

		m := New(m0, &testEnv{})

		if err := m.Step(); err != nil {
			tt.Fatalf("step: %v", err)
		}

		if got := m0.Get(10); got != 100-word.Neg(1) {
			tt.Errorf("mem[10]: want %s, got %s", 100-word.Neg(1), got)
		}
	})

	tt.Run("clock rate", func(tt *testing.T) {
		m0 := mem.New()
		setMem(tt, m0, 0, word.Word(10), word.SinkClockRate, word.Word(3))
		setMem(tt, m0, 10, word.Word(1)<<33)

		m := New(m0, &testEnv{})

		if err := m.Step(); err != nil {
			tt.Fatalf("step: %v", err)
		}

		if got := m0.Get(10); got != (word.Word(1)<<33)-clockRate {
			tt.Errorf("mem[10]: want %s, got %s", (word.Word(1)<<33)-clockRate, got)
		}
	})

	tt.Run("clock time", func(tt *testing.T) {
		m0 := mem.New()
		setMem(tt, m0, 0, word.Word(10), word.SinkClockTime, word.Word(3))
		setMem(tt, m0, 10, 50)

		env := &testEnv{ticks: 20}
		m := New(m0, env)

		if err := m.Step(); err != nil {
			tt.Fatalf("step: %v", err)
		}

		if got := m0.Get(10); got != 30 {
			tt.Errorf("mem[10]: want 30, got %s", got)
		}
	})

	tt.Run("other reserved reads as zero", func(tt *testing.T) {
		m0 := mem.New()
		setMem(tt, m0, 0, word.Word(10), word.IOBase+1, word.Word(3))
		setMem(tt, m0, 10, 50)

		m := New(m0, &testEnv{})

		if err := m.Step(); err != nil {
			tt.Fatalf("step: %v", err)
		}

		if got := m0.Get(10); got != 50 {
			tt.Errorf("mem[10]: want 50, got %s", got)
		}
	})
}

func TestMachine_Step_ErrNotRunning(tt *testing.T) {
	tt.Parallel()

	m0 := mem.New()
	m := New(m0, &testEnv{})
	m.State = Complete

	err := m.Step()
	if !errors.Is(err, ErrNotRunning) {
		tt.Errorf("err: want ErrNotRunning, got %v", err)
	}
}

func TestMachine_Step_MemoryErrorOnGrowthFailure(tt *testing.T) {
	tt.Parallel()

	m0 := mem.New()
	// An ordinary address (below IOBase) so far out that growing to cover
	// it exceeds the allocation cap.
	huge := word.Neg(64)
	setMem(tt, m0, 0, huge, word.Word(10), word.Word(3))
	setMem(tt, m0, 10, 5)

	m := New(m0, &testEnv{})

	err := m.Step()
	if err == nil {
		tt.Fatalf("step: want error, got nil")
	}

	if m.State != MemoryError {
		tt.Errorf("state: want MemoryError, got %s", m.State)
	}

	if m.Err == nil {
		tt.Errorf("Err: want non-nil")
	}
}
