/*
Package asm implements the unileq assembler: a two-pass assembler for the
textual source language accepted by the reference unileq interpreter.

The language has no opcodes, registers, or directives. A program is a
sequence of whitespace-separated word expressions; each expression is a
decimal or hexadecimal literal, the "current address" token '?', or a label
name, optionally chained with '+' and '-' into a left-to-right sum. A label
name followed by ':' is a declaration, binding the name to the address of
the next expression rather than emitting a word itself. Labels starting
with '.' are sublabels, scoped under the most recently declared top-level
label.

	len:     0            # declares len at the address of the word "0"
	one:     1
	txt:     72 101 0-1   # ASCII codes, not character literals

See |Grammar| for the full lexical grammar. Unlike a conventional
assembler, there is only one pass of label *resolution* -- the assembler
runs its scan twice, first to intern every label's address, second to
resolve recalls and emit words, since a label may be used before it is
declared.

Typically, callers use Assemble directly:

	result, err := asm.Assemble(source)

A failure is always a *diag.SyntaxError, ready to be printed to a
terminal, except for memory exhaustion while emitting words, which
surfaces as a *mem.GrowthError.
*/
package asm

import (
	"github.com/smoynes/unileq/internal/diag"
	"github.com/smoynes/unileq/internal/label"
	"github.com/smoynes/unileq/internal/mem"
)

// Grammar declares the syntax of unileq assembly, in EBNF, for reference.
var Grammar = (`
program     = { token } ;
token       = comment | whitespace | expr | declaration ;
comment     = '#' { char - '\n' }
            | '#|' { char } '|#' ;
declaration = label ':' ;
expr        = operand { operator operand } ;
operand     = number | '?' | label ;
operator    = '+' | '-' ;
number      = decimal | hexadecimal ;
decimal     = digit { digit } ;
hexadecimal = '0' ( 'x' | 'X' ) { hexdigit } ;
label       = labelchar { labelchar } ;
labelchar   = letter | digit | '_' | '.' | highbit ;
`)

// MaxSource is the largest source document, in bytes, the assembler will
// accept; longer input is rejected with diag.InputTooLong.
const MaxSource = 1<<30 - 1

// Result is the output of a successful assembly: the memory image the
// program should execute from, and the label table used to build it, kept
// around so callers -- tests, diagnostics, tooling -- can resolve label
// names after the fact.
type Result struct {
	Memory *mem.Memory
	Labels *label.Table
}

// Assemble parses source and, if it is well formed, returns the resulting
// memory image. Errors are always *diag.SyntaxError, except for allocation
// failures encountered while emitting words, which are *mem.GrowthError.
func Assemble(source string) (*Result, error) {
	if len(source) > MaxSource {
		return nil, &diag.SyntaxError{
			Kind:   diag.InputTooLong,
			Source: source,
			Start:  MaxSource,
			End:    MaxSource,
		}
	}

	a := &assembler{
		source: source,
		labels: label.New(),
		memory: mem.New(),
	}

	if err := a.run(false); err != nil {
		return nil, err
	}

	if err := a.run(true); err != nil {
		return nil, err
	}

	return &Result{Memory: a.memory, Labels: a.labels}, nil
}

// assembler holds the state shared by both passes over a source document.
type assembler struct {
	source string
	labels *label.Table
	memory *mem.Memory
}

func (a *assembler) errorAt(kind diag.Kind, start, end int) error {
	return &diag.SyntaxError{Kind: kind, Source: a.source, Start: start, End: end}
}
