package asm

import (
	"github.com/smoynes/unileq/internal/diag"
	"github.com/smoynes/unileq/internal/label"
	"github.com/smoynes/unileq/internal/word"
)

// run scans the whole source once. On the first pass (final == false), it
// interns every label reference and binds declarations to addresses,
// without writing any memory. On the second (final == true), label recalls
// must already resolve, and every completed expression is written to
// memory at the address it was assigned during the first pass.
//
// Both passes share this one routine because the resolution and the
// emission are driven by identical bookkeeping: a running address counter,
// an accumulator for the expression currently being summed, and a pending
// operator. This mirrors the reference interpreter's UnlParseAssembly,
// which runs the same loop body twice rather than maintaining two
// diverging implementations.
func (a *assembler) run(final bool) error {
	s := newScanner([]byte(a.source))

	scope := label.Root
	addr := word.Word(0)
	acc := word.Word(0)
	op := byte(0)

	flush := func() error {
		if !final {
			return nil
		}

		return a.memory.Set(addr-1, acc)
	}

	for s.c != 0 {
		if isSpace(s.c) {
			s.advance()
			continue
		}

		start := s.offset()

		if s.c == '#' {
			if err := a.skipComment(s, start); err != nil {
				return err
			}

			continue
		}

		var (
			val   word.Word
			token bool
		)

		switch {
		case isOperator(s.c):
			leading := addr == 0
			kind := diag.Kind(-1)

			if op != 0 {
				kind = diag.DoubleOperator
			}

			if op == ':' {
				kind = diag.OperatingOnDeclaration
			}

			addr--

			if leading {
				kind = diag.LeadingOperator
			}

			if kind >= 0 {
				return a.errorAt(kind, start, start+1)
			}

			op = s.c
			s.advance()

		case isDigit(s.c):
			val = a.scanNumber(s)
			token = true

		case s.c == '?':
			val = addr
			token = true
			s.advance()

		case isLabelChar(s.c):
			name := a.scanLabel(s)
			end := s.offset()
			ref := a.labels.Intern(scope, name)
			val = a.labels.AddressOf(ref)

			if s.c == ':' {
				if !final {
					if val != word.Unresolved {
						return a.errorAt(diag.DuplicateLabel, start, end)
					}

					a.labels.SetAddress(ref, addr)
				}

				if name[0] != '.' {
					scope = ref
				}

				if op == '+' || op == '-' {
					return a.errorAt(diag.OperatingOnDeclaration, start, end)
				}

				op = ':'
				s.advance()
			} else {
				token = true

				if final && val == word.Unresolved {
					return a.errorAt(diag.LabelNotFound, start, end)
				}
			}

		default:
			return a.errorAt(diag.UnexpectedToken, start, start+1)
		}

		if !token {
			continue
		}

		switch op {
		case '+':
			val = acc + val
		case '-':
			val = acc - val
		default:
			if err := flush(); err != nil {
				return err
			}
		}

		addr++
		acc = val
		op = 0

		if isLabelChar(s.c) || s.c == '?' {
			return a.errorAt(diag.UnseparatedTokens, s.offset(), s.offset()+1)
		}
	}

	if op == '+' || op == '-' {
		return a.errorAt(diag.TrailingOperator, len(a.source), len(a.source))
	}

	return flush()
}

// scanNumber consumes a decimal or, with a "0x"/"0X" prefix, hexadecimal
// literal starting at the scanner's current position.
func (a *assembler) scanNumber(s *scanner) word.Word {
	base := uint64(10)

	if s.c == '0' {
		s.advance()

		if s.c == 'x' || s.c == 'X' {
			base = 16
			s.advance()
		}
	}

	val := word.Word(0)

	for {
		n, ok := digitValue(s.c, base)
		if !ok {
			break
		}

		val = val*word.Word(base) + word.Word(n)
		s.advance()
	}

	return val
}

// scanLabel consumes a maximal run of label characters starting at the
// scanner's current position.
func (a *assembler) scanLabel(s *scanner) []byte {
	start := s.offset()

	for isLabelChar(s.c) {
		s.advance()
	}

	return []byte(a.source[start:s.offset()])
}

// skipComment consumes a '#' line comment (through the end of the line) or
// a '#|' ... '|#' block comment. start is the offset of the '#' itself, for
// error reporting if a block comment is never closed.
func (a *assembler) skipComment(s *scanner, start int) error {
	s.advance()

	if s.c != '|' {
		for s.c != 0 && s.c != '\n' {
			s.advance()
		}

		return nil
	}

	s.advance()

	prev := byte(0)

	for {
		if s.c == 0 {
			return a.errorAt(diag.UnterminatedBlockQuote, start, s.offset())
		}

		if prev == '|' && s.c == '#' {
			s.advance()
			return nil
		}

		prev = s.c
		s.advance()
	}
}
