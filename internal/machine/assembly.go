package machine

// assembly.go bridges internal/asm's result type to a Machine, encoding the
// state machine's "initial after program load" rule: Running if assembly
// succeeded, ParserError otherwise.

import (
	"errors"

	"github.com/smoynes/unileq/internal/asm"
	"github.com/smoynes/unileq/internal/mem"
)

// NewFromAssembly constructs a Machine from the result of asm.Assemble,
// giving a caller one State to inspect regardless of whether the program
// failed to assemble or failed while running. If assembleErr is non-nil,
// the returned Machine starts in ParserError, carrying assembleErr as Err --
// unless assembleErr is a *mem.GrowthError, in which case it starts in
// MemoryError, matching the state Step itself would report for the same
// underlying failure. result is ignored when assembleErr is non-nil (it is
// nil on a failed assembly).
func NewFromAssembly(result *asm.Result, assembleErr error, env Environment, opts ...OptionFn) *Machine {
	memory := mem.New()
	if result != nil {
		memory = result.Memory
	}

	m := New(memory, env, opts...)

	if assembleErr != nil {
		var growthErr *mem.GrowthError

		if errors.As(assembleErr, &growthErr) {
			m.State = MemoryError
		} else {
			m.State = ParserError
		}

		m.Err = assembleErr
	}

	return m
}
