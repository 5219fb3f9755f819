package asm

// scanner.go implements a one-byte-lookahead cursor over the source text.
// It mirrors the reference interpreter's NEXT macro: c always holds the
// current unconsumed byte (0 at end of input) and advance() both yields the
// next byte into c and moves the cursor past it, so every dispatch branch
// leaves c holding the first byte it did not itself consume.

type scanner struct {
	src []byte
	pos int
	c   byte
}

func newScanner(src []byte) *scanner {
	s := &scanner{src: src}
	s.advance()

	return s
}

func (s *scanner) advance() {
	if s.pos < len(s.src) {
		s.c = s.src[s.pos]
		s.pos++
	} else {
		s.c = 0
	}
}

// pos of s.c in src, valid as long as c != 0 or pos == len(src).
func (s *scanner) offset() int {
	return s.pos - 1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isOperator(c byte) bool {
	return c == '+' || c == '-'
}

// isLabelChar reports whether c can appear in a label identifier: letters,
// digits, underscore, period, or any byte with the high bit set (so labels
// are unrestricted UTF-8 besides the ASCII punctuation used for syntax).
func isLabelChar(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c == '_' || c == '.':
		return true
	case c >= 128:
		return true
	default:
		return false
	}
}

// digitValue returns the value of c as a digit in the given base,
// case-insensitively, and whether c is a valid digit in that base.
func digitValue(c byte, base uint64) (uint64, bool) {
	var n uint64

	switch {
	case c >= '0' && c <= '9':
		n = uint64(c - '0')
	case c >= 'a' && c <= 'z':
		n = uint64(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		n = uint64(c-'A') + 10
	default:
		return 0, false
	}

	if n >= base {
		return 0, false
	}

	return n, true
}
