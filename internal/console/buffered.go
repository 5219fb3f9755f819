package console

import (
	"bufio"
	"io"
	"time"

	"github.com/smoynes/unileq/internal/word"
)

// Buffered is a machine.Environment driven by an arbitrary io.Reader/Writer
// pair rather than a raw terminal: used by the run command for every run,
// whether or not stdin is a TTY, and by tests, which script input
// deterministically instead of reading a real keyboard.
type Buffered struct {
	in  *bufio.Reader
	out io.Writer
	now func() time.Time
}

// OptionFn configures a Buffered at construction.
type OptionFn func(*Buffered)

// WithClock overrides the clock Buffered reads NowTicks from; tests use
// this to make clock-sink reads deterministic.
func WithClock(now func() time.Time) OptionFn {
	return func(b *Buffered) { b.now = now }
}

// NewBuffered returns a Buffered reading from in and writing to out.
func NewBuffered(in io.Reader, out io.Writer, opts ...OptionFn) *Buffered {
	b := &Buffered{
		in:  bufio.NewReader(in),
		out: out,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

func (b *Buffered) ReadByte() (byte, bool) {
	by, err := b.in.ReadByte()
	if err != nil {
		return 0, false
	}

	return by, true
}

func (b *Buffered) WriteByte(by byte) {
	_, _ = b.out.Write([]byte{by})
}

func (b *Buffered) NowTicks() word.Word {
	return ticksAt(b.now())
}

// Sleep pauses for ticks/2^32 seconds, the same as Console. Tests that
// exercise the sleep sink should pass small tick counts to keep runtime
// short.
func (b *Buffered) Sleep(ticks word.Word) {
	time.Sleep(durationFromTicks(ticks))
}
