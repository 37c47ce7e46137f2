package bridge

import (
	"github.com/wippyai/hostbridge/handle"
	"github.com/wippyai/hostbridge/textstream"
)

// NewStringReader creates a reader over s.
func (e *Env) NewStringReader(s string) handle.Handle {
	return e.register(TypeStringReader, textstream.NewReader(s))
}

// ReaderRead returns the next UTF-16 unit, or -1 at end of stream.
func (e *Env) ReaderRead(h handle.Handle) int {
	r, ok := lookup[*textstream.Reader](e, h)
	if !ok {
		return 0
	}
	c, err := r.Read()
	if err != nil {
		e.ThrowError(err)
		return 0
	}
	return c
}

// ReaderReadInto reads up to n units into buf[off:]. It returns the count
// read, or -1 when the stream is exhausted.
func (e *Env) ReaderReadInto(h handle.Handle, buf []uint16, off, n int) int {
	r, ok := lookup[*textstream.Reader](e, h)
	if !ok {
		return 0
	}
	read, err := r.ReadInto(buf, off, n)
	if err != nil {
		e.ThrowError(err)
		return 0
	}
	return read
}

// ReaderSkip skips up to n units and returns how many were skipped.
func (e *Env) ReaderSkip(h handle.Handle, n int64) int64 {
	r, ok := lookup[*textstream.Reader](e, h)
	if !ok {
		return 0
	}
	skipped, err := r.Skip(n)
	if err != nil {
		e.ThrowError(err)
		return 0
	}
	return skipped
}

func (e *Env) ReaderReady(h handle.Handle) bool {
	r, ok := lookup[*textstream.Reader](e, h)
	if !ok {
		return false
	}
	ready, err := r.Ready()
	if err != nil {
		e.ThrowError(err)
		return false
	}
	return ready
}

func (e *Env) ReaderMarkSupported(h handle.Handle) bool {
	r, ok := lookup[*textstream.Reader](e, h)
	if !ok {
		return false
	}
	return r.MarkSupported()
}

func (e *Env) ReaderMark(h handle.Handle, readAheadLimit int) {
	r, ok := lookup[*textstream.Reader](e, h)
	if !ok {
		return
	}
	if err := r.Mark(readAheadLimit); err != nil {
		e.ThrowError(err)
	}
}

func (e *Env) ReaderReset(h handle.Handle) {
	r, ok := lookup[*textstream.Reader](e, h)
	if !ok {
		return
	}
	if err := r.Reset(); err != nil {
		e.ThrowError(err)
	}
}

// ReaderClose closes the reader. The handle stays live until DeleteRef.
func (e *Env) ReaderClose(h handle.Handle) {
	r, ok := lookup[*textstream.Reader](e, h)
	if !ok {
		return
	}
	if err := r.Close(); err != nil {
		e.ThrowError(err)
	}
}

// NewStringWriter creates an empty writer.
func (e *Env) NewStringWriter() handle.Handle {
	return e.register(TypeStringWriter, textstream.NewWriter())
}

// NewStringWriterSize creates a writer whose buffer starts with capacity n.
func (e *Env) NewStringWriterSize(n int) handle.Handle {
	w, err := textstream.NewWriterSize(n)
	if err != nil {
		e.ThrowError(err)
		return handle.Null
	}
	return e.register(TypeStringWriter, w)
}

// WriterWrite writes s.
func (e *Env) WriterWrite(h handle.Handle, s string) {
	w, ok := lookup[*textstream.Writer](e, h)
	if !ok {
		return
	}
	if _, err := w.WriteString(s); err != nil {
		e.ThrowError(err)
	}
}

// WriterWriteChar writes the low 16 bits of c.
func (e *Env) WriterWriteChar(h handle.Handle, c int32) {
	w, ok := lookup[*textstream.Writer](e, h)
	if !ok {
		return
	}
	w.WriteChar(c)
}

func (e *Env) WriterWriteChars(h handle.Handle, units []uint16, off, n int) {
	w, ok := lookup[*textstream.Writer](e, h)
	if !ok {
		return
	}
	if err := w.WriteChars(units, off, n); err != nil {
		e.ThrowError(err)
	}
}

func (e *Env) WriterWriteStringRange(h handle.Handle, s string, off, n int) {
	w, ok := lookup[*textstream.Writer](e, h)
	if !ok {
		return
	}
	if err := w.WriteStringRange(s, off, n); err != nil {
		e.ThrowError(err)
	}
}

// WriterAppend appends s and returns h.
func (e *Env) WriterAppend(h handle.Handle, s string) handle.Handle {
	w, ok := lookup[*textstream.Writer](e, h)
	if !ok {
		return handle.Null
	}
	w.Append(s)
	return h
}

func (e *Env) WriterAppendChar(h handle.Handle, c uint16) handle.Handle {
	w, ok := lookup[*textstream.Writer](e, h)
	if !ok {
		return handle.Null
	}
	w.AppendChar(c)
	return h
}

func (e *Env) WriterFlush(h handle.Handle) {
	w, ok := lookup[*textstream.Writer](e, h)
	if !ok {
		return
	}
	if err := w.Flush(); err != nil {
		e.ThrowError(err)
	}
}

func (e *Env) WriterClose(h handle.Handle) {
	w, ok := lookup[*textstream.Writer](e, h)
	if !ok {
		return
	}
	if err := w.Close(); err != nil {
		e.ThrowError(err)
	}
}

// WriterBuffer registers the writer's backing buffer and returns its
// handle. Both handles name the same storage.
func (e *Env) WriterBuffer(h handle.Handle) handle.Handle {
	w, ok := lookup[*textstream.Writer](e, h)
	if !ok {
		return handle.Null
	}
	return e.register(TypeStringBuffer, w.Buffer())
}
