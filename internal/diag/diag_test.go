package diag

import (
	"errors"
	"strings"
	"testing"
)

func TestKind_String(tt *testing.T) {
	tt.Parallel()

	cases := map[Kind]string{
		LeadingOperator:        "Leading operator",
		DoubleOperator:         "Double operator",
		TrailingOperator:       "Trailing operator",
		OperatingOnDeclaration: "Operating on declaration",
		UnseparatedTokens:      "Unseparated tokens",
		UnexpectedToken:        "Unexpected token",
		LabelNotFound:          "Unable to find label",
		DuplicateLabel:         "Duplicate label declaration",
		UnterminatedBlockQuote: "Unterminated block quote",
		InputTooLong:           "Input string too long",
	}

	for kind, want := range cases {
		if got := kind.String(); got != want {
			tt.Errorf("Kind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}

func TestKind_StringOutOfRange(tt *testing.T) {
	tt.Parallel()

	if got, want := Kind(99).String(), "Kind(99)"; got != want {
		tt.Errorf("Kind(99).String() = %q, want %q", got, want)
	}
}

func TestSyntaxError_Is(tt *testing.T) {
	tt.Parallel()

	err := &SyntaxError{Kind: LeadingOperator, Source: "+1", Start: 0, End: 1}

	if !errors.Is(err, &SyntaxError{Kind: LeadingOperator}) {
		tt.Error("errors.Is did not match on Kind")
	}

	if errors.Is(err, &SyntaxError{Kind: DoubleOperator}) {
		tt.Error("errors.Is matched a different Kind")
	}
}

func TestSyntaxError_Line(tt *testing.T) {
	tt.Parallel()

	src := "one\ntwo\nthree"
	err := &SyntaxError{Source: src, Start: strings.Index(src, "three")}

	if got := err.Line(); got != 3 {
		tt.Errorf("Line() = %d, want 3", got)
	}
}

func TestSyntaxError_Error(tt *testing.T) {
	tt.Parallel()

	src := "1 +2"
	start := strings.Index(src, "+")
	err := &SyntaxError{Kind: DoubleOperator, Source: src, Start: start, End: start + 1}

	msg := err.Error()

	if !strings.Contains(msg, "Double operator") {
		tt.Errorf("Error() = %q, want it to mention the kind", msg)
	}

	if !strings.Contains(msg, "1 +2") {
		tt.Errorf("Error() = %q, want it to contain the source window", msg)
	}

	if !strings.Contains(msg, "^") {
		tt.Errorf("Error() = %q, want a caret underline", msg)
	}
}

func TestSyntaxError_WindowTrimsWhitespace(tt *testing.T) {
	tt.Parallel()

	src := "   1 + 2   \n"
	start := strings.Index(src, "+")
	err := &SyntaxError{Kind: DoubleOperator, Source: src, Start: start, End: start + 1}

	win, under := err.window()

	if strings.HasPrefix(win, " ") || strings.HasSuffix(win, " ") {
		tt.Errorf("window = %q, want leading/trailing whitespace trimmed", win)
	}

	if len(win) != len(under) {
		tt.Errorf("window/underline length mismatch: %d vs %d", len(win), len(under))
	}
}
