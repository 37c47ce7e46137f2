package textstream

import (
	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/internal/jtext"
	"github.com/wippyai/hostbridge/textbuf"
)

// Writer collects text in a synchronized buffer. It shares no state with
// any Reader. Flush and Close are no-ops; String is valid at any time.
type Writer struct {
	buf *textbuf.Buffer
}

// NewWriter returns an empty writer with the default buffer capacity.
func NewWriter() *Writer {
	return &Writer{buf: textbuf.NewBuffer()}
}

// NewWriterSize returns an empty writer whose buffer starts with capacity n.
func NewWriterSize(n int) (*Writer, error) {
	buf, err := textbuf.NewBufferCapacity(n)
	if err != nil {
		return nil, err
	}
	return &Writer{buf: buf}, nil
}

// WriteChars writes units[off:off+n].
func (w *Writer) WriteChars(units []uint16, off, n int) error {
	if off < 0 || n < 0 || off+n > len(units) {
		return errors.RangeOutOfBounds(errors.PhaseStream, []string{"writeChars"}, off, off+n, len(units))
	}
	if n == 0 {
		return nil
	}
	_, err := w.buf.AppendChars(units, off, n)
	return err
}

// WriteChar writes the low 16 bits of c as one code unit.
func (w *Writer) WriteChar(c int32) {
	w.buf.AppendChar(uint16(c))
}

// WriteString writes s. It implements io.StringWriter.
func (w *Writer) WriteString(s string) (int, error) {
	w.buf.AppendString(s)
	return len(s), nil
}

// WriteStringRange writes n code units of s starting at unit off.
func (w *Writer) WriteStringRange(s string, off, n int) error {
	units := jtext.Encode(s)
	if off < 0 || n < 0 || off+n > len(units) {
		return errors.RangeOutOfBounds(errors.PhaseStream, []string{"writeStringRange"}, off, off+n, len(units))
	}
	_, err := w.buf.AppendChars(units, off, n)
	return err
}

// Write writes p decoded as UTF-8. It implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// AppendChar writes one code unit and returns the writer.
func (w *Writer) AppendChar(c uint16) *Writer {
	w.buf.AppendChar(c)
	return w
}

// Append writes s and returns the writer.
func (w *Writer) Append(s string) *Writer {
	w.buf.AppendString(s)
	return w
}

// AppendRange writes the units of s in [start, end) and returns the writer.
func (w *Writer) AppendRange(s string, start, end int) (*Writer, error) {
	if err := w.WriteStringRange(s, start, end-start); err != nil {
		return w, err
	}
	return w, nil
}

// Flush makes buffered content visible to String. Content is always
// visible, so it does nothing.
func (w *Writer) Flush() error { return nil }

// Close does nothing; a closed writer keeps accepting writes.
func (w *Writer) Close() error { return nil }

// String returns everything written so far.
func (w *Writer) String() string { return w.buf.String() }

// Buffer returns the underlying buffer.
func (w *Writer) Buffer() *textbuf.Buffer { return w.buf }
