// Package textstream implements in-memory character streams: a Reader with
// mark and reset over immutable text, and an append-only Writer.
package textstream

import (
	"io"
	"sync"
	"unicode/utf8"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/internal/jtext"
)

// EOF is returned by Read and ReadInto at the end of the stream.
const EOF = -1

// Reader reads UTF-16 code units from a string. Calls are serialized.
//
// A Reader is Open until Close; after that every operation except Close
// fails with a stream_closed error.
type Reader struct {
	mu     sync.Mutex
	units  []uint16
	pos    int
	mark   int
	limit  int
	marked bool
	closed bool
}

// NewReader returns a reader over s.
func NewReader(s string) *Reader {
	return &Reader{units: jtext.Encode(s)}
}

// NewReaderFromUnits returns a reader over a copy of units.
func NewReaderFromUnits(units []uint16) *Reader {
	return &Reader{units: append([]uint16(nil), units...)}
}

func (r *Reader) ensureOpen(op string) error {
	if r.closed {
		return errors.New(errors.PhaseStream, errors.KindStreamClosed).
			Path(op).
			Detail("stream closed").
			Build()
	}
	return nil
}

// EnsureOpen returns a stream_closed error once the reader is closed.
func (r *Reader) EnsureOpen() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ensureOpen("ensureOpen")
}

// Read returns the next code unit, or EOF.
func (r *Reader) Read() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureOpen("read"); err != nil {
		return 0, err
	}
	if r.pos >= len(r.units) {
		return EOF, nil
	}
	c := r.units[r.pos]
	r.pos++
	return int(c), nil
}

// ReadInto reads up to n units into buf[off:]. It returns EOF only when no
// unit remains; n == 0 reads nothing and returns 0.
func (r *Reader) ReadInto(buf []uint16, off, n int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureOpen("readInto"); err != nil {
		return 0, err
	}
	if off < 0 || n < 0 || off+n > len(buf) {
		return 0, errors.RangeOutOfBounds(errors.PhaseStream, []string{"readInto"}, off, off+n, len(buf))
	}
	if n == 0 {
		return 0, nil
	}
	if r.pos >= len(r.units) {
		return EOF, nil
	}
	read := copy(buf[off:off+n], r.units[r.pos:])
	r.pos += read
	return read, nil
}

// ReadRune reads one code point, joining surrogate pairs. The size is the
// UTF-8 length of the returned rune. It returns io.EOF at the end.
func (r *Reader) ReadRune() (rune, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureOpen("readRune"); err != nil {
		return 0, 0, err
	}
	if r.pos >= len(r.units) {
		return 0, 0, io.EOF
	}
	c, n := jtext.DecodeRune(r.units, r.pos)
	r.pos += n
	if n == 1 && (jtext.IsHighSurrogate(uint16(c)) || jtext.IsLowSurrogate(uint16(c))) {
		c = utf8.RuneError
	}
	return c, utf8.RuneLen(c), nil
}

// Skip advances past up to n units and returns how many were skipped.
// Negative n skips nothing.
func (r *Reader) Skip(n int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureOpen("skip"); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, nil
	}
	remaining := int64(len(r.units) - r.pos)
	if n > remaining {
		n = remaining
	}
	r.pos += int(n)
	return n, nil
}

// Ready reports whether a read would return a unit rather than EOF.
func (r *Reader) Ready() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureOpen("ready"); err != nil {
		return false, err
	}
	return r.pos < len(r.units), nil
}

// MarkSupported always reports true.
func (r *Reader) MarkSupported() bool { return true }

// Mark records the current position. A later Reset returns to it as long
// as no more than readAheadLimit units have been consumed in between.
func (r *Reader) Mark(readAheadLimit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if readAheadLimit < 0 {
		return errors.New(errors.PhaseStream, errors.KindInvalidInput).
			Path("mark").
			Value(readAheadLimit).
			Detail("read-ahead limit %d < 0", readAheadLimit).
			Build()
	}
	if err := r.ensureOpen("mark"); err != nil {
		return err
	}
	r.mark = r.pos
	r.limit = readAheadLimit
	r.marked = true
	return nil
}

// Reset moves the cursor back to the mark.
func (r *Reader) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureOpen("reset"); err != nil {
		return err
	}
	if !r.marked {
		return errors.New(errors.PhaseStream, errors.KindMarkNotSet).
			Path("reset").
			Detail("reset without a prior mark").
			Build()
	}
	if consumed := r.pos - r.mark; consumed > r.limit {
		return errors.New(errors.PhaseStream, errors.KindInvalidatedMark).
			Path("reset").
			Value(consumed).
			Detail("%d units consumed since mark, read-ahead limit %d", consumed, r.limit).
			Build()
	}
	r.pos = r.mark
	return nil
}

// Close closes the reader. Closing twice is a no-op.
func (r *Reader) Close() error {
	r.mu.Lock()
	r.closed = true
	r.units = nil
	r.mu.Unlock()
	return nil
}
