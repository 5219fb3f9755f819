// Package word defines the base data type the machine operates on: a
// wrapping unsigned 64-bit integer used uniformly for addresses, memory
// cells, and instruction operands.
package word

import "fmt"

// Word is the base data type on which the machine operates. Addresses,
// memory cells, and instruction operands are all 64-bit values.
type Word uint64

// Bits is the width of a Word.
const Bits = 64

func (w Word) String() string {
	return fmt.Sprintf("%#016x", uint64(w))
}

// Add returns w+v with unsigned wrap-around, matching the machine's modulo
// 2^64 arithmetic.
func (w Word) Add(v Word) Word {
	return w + v
}

// Sub returns w-v with unsigned wrap-around.
func (w Word) Sub(v Word) Word {
	return w - v
}

// Neg returns the word that reads as "negative n", i.e. 2^64 - n. It is the
// idiomatic way to name one of the reserved addresses: Neg(1) is the halt
// sink, Neg(32) is the first reserved address, and so on.
func Neg(n uint64) Word {
	return Word(0) - Word(n)
}

// IOBase is the first reserved address: 2^64 - 32. Ordinary addresses are
// strictly less than IOBase.
const IOBase = Word(1<<Bits - 32)

// Reserved host-I/O sink addresses. See the machine package for their
// semantics.
const (
	SinkHalt      = Word(1<<Bits - 1)
	SinkOutput    = Word(1<<Bits - 2)
	SinkInput     = Word(1<<Bits - 3)
	SinkClockRate = Word(1<<Bits - 4)
	SinkClockTime = Word(1<<Bits - 5)
	SinkSleep     = Word(1<<Bits - 6)
)

// Unresolved is the sentinel value for a label that has not yet been
// declared. It is numerically identical to SinkHalt (both are 2^64-1), which
// is harmless: one lives in the label table's address space, the other in a
// program's memory image, and a syntactically valid program can never emit a
// word at address 2^64-1 (the 2^30-1 byte source-length cap makes it
// unreachable).
const Unresolved = Word(1<<Bits - 1)

// Ordinary reports whether addr is below the reserved range.
func (w Word) Ordinary() bool {
	return w < IOBase
}
