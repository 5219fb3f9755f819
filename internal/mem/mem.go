// Package mem implements the machine's sparse, lazily-growing address space.
package mem

// mem.go holds the growable backing store for the machine's memory. Unlike a
// fixed 128KiB address space, a unileq program addresses a full 64-bit space,
// almost all of which is never touched; growth happens on demand, doubling
// the backing slice until it covers the write.

import (
	"fmt"
	"math"

	"github.com/smoynes/unileq/internal/log"
	"github.com/smoynes/unileq/internal/word"
)

// maxAlloc is the largest number of words we will ever attempt to allocate in
// one contiguous slice. It is bounded by the host's addressable limit for a
// Go slice, which is governed by int, not by the 64-bit address space itself.
const maxAlloc = math.MaxInt64 / 8

// Memory is a flat, growable array of words, indexed by address. Reads from
// an address beyond the currently allocated region return zero; writes grow
// the region only when necessary.
type Memory struct {
	cell []word.Word
	log  *log.Logger
}

// New creates an empty memory with no backing store.
func New() *Memory {
	return &Memory{log: log.DefaultLogger()}
}

// Len returns the number of words currently backed.
func (m *Memory) Len() int {
	return len(m.cell)
}

// Get returns the word at addr, or zero if addr is not currently backed.
// Get never fails and never grows the backing store.
func (m *Memory) Get(addr word.Word) word.Word {
	if addr < word.Word(len(m.cell)) {
		return m.cell[addr]
	}

	return 0
}

// GrowthError is returned by Set when the backing store cannot be grown to
// cover the requested address.
type GrowthError struct {
	Addr word.Word
}

func (e *GrowthError) Error() string {
	return fmt.Sprintf("Failed to allocate memory.\nIndex: %d\n", uint64(e.Addr))
}

// Set writes val at addr. If addr lies beyond the backing store and val is
// zero, Set is a no-op: this shortcut is required so that programs which
// address very high words (such as the reserved range) with zero values
// don't force a futile, enormous allocation. Otherwise, Set grows the
// backing store to cover addr, zero-filling the new cells, before writing.
func (m *Memory) Set(addr word.Word, val word.Word) error {
	if addr < word.Word(len(m.cell)) {
		m.cell[addr] = val
		return nil
	}

	if val == 0 {
		return nil
	}

	if err := m.grow(addr); err != nil {
		return err
	}

	m.cell[addr] = val

	return nil
}

// grow doubles the backing store until it covers addr, capped at maxAlloc.
func (m *Memory) grow(addr word.Word) error {
	size := uint64(1)
	if n := uint64(len(m.cell)); n > size {
		size = n
	}

	for size <= uint64(addr) {
		if size >= maxAlloc {
			break
		}

		size <<= 1

		if size > maxAlloc {
			size = maxAlloc
		}
	}

	if size <= uint64(addr) {
		m.log.Error("memory: growth failed", "addr", addr)
		return &GrowthError{Addr: addr}
	}

	grown := make([]word.Word, size)
	copy(grown, m.cell)
	m.cell = grown

	return nil
}
