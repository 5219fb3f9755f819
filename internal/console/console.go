/*
Package console implements machine.Environment, the host side of a
machine's six reserved addresses: byte I/O and timing over a real terminal
or an arbitrary byte stream.

Console adapts the reference project's tty.Console -- raw-mode terminal
I/O via golang.org/x/term and golang.org/x/sys/unix -- from an LC-3
keyboard/display device pair to a single flat byte stream, since unileq
has no registers or devices, only the six reserved addresses. Unlike
tty.Console, there is no goroutine/channel plumbing: a machine's Step
calls ReadByte/WriteByte inline and synchronously, so Console need only
block on the underlying file descriptor.
*/
package console

import (
	"bufio"
	"io"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/smoynes/unileq/internal/word"
)

// Console is a machine.Environment backed by a real terminal, put into raw
// mode so ReadByte delivers keystrokes one at a time rather than waiting
// for a line to be buffered by the kernel's line discipline.
type Console struct {
	sin   *os.File
	in    *bufio.Reader
	out   io.Writer
	fd    int
	state *term.State
}

// New puts sin into raw mode and returns a Console reading from sin and
// writing to sout. sin must be a terminal; non-interactive callers should
// use Buffered instead. Callers must call Restore when done to return the
// terminal to its original state.
func New(sin *os.File, sout io.Writer) (*Console, error) {
	fd := int(sin.Fd())

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	cons := &Console{
		sin:   sin,
		in:    bufio.NewReader(sin),
		out:   sout,
		fd:    fd,
		state: state,
	}

	if err := cons.setTerminalParams(1, 0); err != nil {
		_ = term.Restore(fd, state)
		return nil, err
	}

	return cons, nil
}

// Restore returns the terminal to the state it was in before New was
// called and unblocks any ReadByte call in progress.
func (c *Console) Restore() error {
	unblockPendingRead(c.sin)

	return term.Restore(c.fd, c.state)
}

// setTerminalParams configures the line discipline to return a read as
// soon as vmin bytes are available, waiting at most vtime deciseconds --
// the same termios fields the reference project's tty.Console tunes, via
// the same ioctl pair.
func (c *Console) setTerminalParams(vmin, vtime byte) error {
	termIO, err := unix.IoctlGetTermios(c.fd, getTermiosIoctl)
	if err != nil {
		return err
	}

	termIO.Cc[unix.VMIN] = vmin
	termIO.Cc[unix.VTIME] = vtime

	return unix.IoctlSetTermios(c.fd, setTermiosIoctl, termIO)
}

// ReadByte reads one byte from the terminal. ok is false if the read
// failed (including on EOF, e.g. after Restore cancels a pending read).
func (c *Console) ReadByte() (byte, bool) {
	b, err := c.in.ReadByte()
	if err != nil {
		return 0, false
	}

	return b, true
}

// WriteByte writes one byte to the terminal. A write failure is swallowed,
// per machine.Environment's contract.
func (c *Console) WriteByte(b byte) {
	_, _ = c.out.Write([]byte{b})
}

// NowTicks returns the current wall-clock time encoded as whole seconds in
// the high 32 bits and a sub-second fraction in the low 32, matching the
// machine's clock-rate sink (2^32 ticks per second).
func (c *Console) NowTicks() word.Word {
	return ticksAt(time.Now())
}

// Sleep pauses the calling goroutine for ticks/2^32 seconds.
func (c *Console) Sleep(ticks word.Word) {
	time.Sleep(durationFromTicks(ticks))
}

// unblockPendingRead arranges for a read in progress on sin to return,
// used by callers that want Restore to also stop an in-flight ReadByte.
func unblockPendingRead(sin *os.File) {
	_ = syscall.SetNonblock(int(sin.Fd()), true)
	_ = sin.SetReadDeadline(time.Now())
}

const clockRate = uint64(1) << 32

func ticksAt(t time.Time) word.Word {
	sec := uint64(t.Unix())
	frac := uint64(float64(t.Nanosecond()) / float64(time.Second) * float64(clockRate))

	return word.Word(sec<<32 | frac)
}

func durationFromTicks(ticks word.Word) time.Duration {
	secs := float64(uint64(ticks)) / float64(clockRate)

	return time.Duration(secs * float64(time.Second))
}
