// Package diag renders parser errors the way the reference unileq
// interpreter does: a short error kind, a 1-based source line number, and a
// trimmed source window with a caret-underline ruler pointing at the
// offending token.
package diag

import (
	"fmt"
	"strings"
)

// Kind names one of the assembler's parse error conditions. The set is
// closed and matches spec.md exactly, word for word.
type Kind int

// Parse error kinds.
const (
	LeadingOperator Kind = iota
	DoubleOperator
	TrailingOperator
	OperatingOnDeclaration
	UnseparatedTokens
	UnexpectedToken
	LabelNotFound
	DuplicateLabel
	UnterminatedBlockQuote
	InputTooLong
)

//go:generate go run golang.org/x/tools/cmd/stringer -type Kind -output kind_string.go

// windowWidth is the maximum number of source bytes rendered in a
// diagnostic window, matching the reference implementation's 60-byte cap.
const windowWidth = 60

// SyntaxError is returned by the assembler when source text is malformed.
// Start and End bound the offending token as byte offsets into Source;
// End is exclusive. When a token has no natural end (e.g. end-of-input),
// End equals Start.
type SyntaxError struct {
	Kind   Kind
	Source string
	Start  int
	End    int
}

func (e *SyntaxError) Error() string {
	win, under := e.window()
	return fmt.Sprintf("Parser: %s\nLine  : %d\n\n\t%s\n\t%s\n", e.Kind, e.Line(), win, under)
}

// Line returns the 1-based source line number containing the error.
func (e *SyntaxError) Line() int {
	line := 1

	for i := 0; i < e.Start && i < len(e.Source); i++ {
		if e.Source[i] == '\n' {
			line++
		}
	}

	return line
}

// Is lets errors.Is match SyntaxErrors by Kind alone, so callers and tests
// can write errors.Is(err, &diag.SyntaxError{Kind: diag.LeadingOperator}).
func (e *SyntaxError) Is(target error) bool {
	other, ok := target.(*SyntaxError)
	if !ok {
		return false
	}

	return e.Kind == other.Kind
}

// window renders the source line containing the error, trimmed to at most
// windowWidth bytes, together with a caret-underline ruler below it. This
// mirrors the reference C interpreter's window/underline construction in
// UnlParseAssembly's error path: find the line bounds around the error,
// trim surrounding whitespace, shift the window rightward if the error is
// more than 30 bytes into a long line, and underline exactly the bytes
// covered by [Start, End) with '^', passing other whitespace through so
// tabs in the source still line up with tabs in the ruler.
func (e *SyntaxError) window() (string, string) {
	src := e.Source
	start, end := e.Start, e.End

	if start > len(src) {
		start = len(src)
	}

	if end < start {
		end = start
	}

	s0, s1 := 0, len(src)

	for i := 0; i < start; i++ {
		if src[i] == '\n' {
			s0 = i + 1
		}
	}

	for i := start; i < len(src); i++ {
		if src[i] == '\n' {
			s1 = i
			break
		}
	}

	for s0 < s1 && src[s0] <= ' ' {
		s0++
	}

	for s1 > s0 && src[s1-1] <= ' ' {
		s1--
	}

	if start > s0+30 {
		s0 = start - 30
	}

	var win, under strings.Builder

	k := 0
	for i := s0; i < s1 && k < windowWidth; i, k = i+1, k+1 {
		c := src[i]
		win.WriteByte(c)

		switch {
		case i >= start && i < end:
			under.WriteByte('^')
		case c <= ' ':
			under.WriteByte(c)
		default:
			under.WriteByte(' ')
		}
	}

	return win.String(), under.String()
}
