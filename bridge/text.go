package bridge

import (
	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/handle"
	"github.com/wippyai/hostbridge/textbuf"
	"github.com/wippyai/hostbridge/textstream"
)

// withText runs fn against the text object named by h. Buffers and
// writers run fn under their lock. It reports whether fn ran and succeeded.
func (e *Env) withText(h handle.Handle, fn func(b *textbuf.Builder) error) bool {
	if e.pending != nil {
		return false
	}
	v, err := e.bridge.table.Resolve(h)
	if err != nil {
		e.ThrowError(err)
		return false
	}
	switch t := v.(type) {
	case *textbuf.Builder:
		err = fn(t)
	case *textbuf.Buffer:
		t.Locked(func(b *textbuf.Builder) { err = fn(b) })
	case *textstream.Writer:
		t.Buffer().Locked(func(b *textbuf.Builder) { err = fn(b) })
	default:
		err = errors.TypeMismatch(errors.PhaseBridge, []string{h.String()}, typeName(v), "java/lang/CharSequence")
	}
	if err != nil {
		e.ThrowError(err)
		return false
	}
	return true
}

// edit is withText for operations that return the receiver.
func (e *Env) edit(h handle.Handle, fn func(b *textbuf.Builder) error) handle.Handle {
	if e.withText(h, fn) {
		return h
	}
	return handle.Null
}

// NewStringBuilder creates an empty, unsynchronized builder.
func (e *Env) NewStringBuilder() handle.Handle {
	return e.register(TypeStringBuilder, textbuf.New())
}

// NewStringBuilderCapacity creates an empty builder with capacity n.
func (e *Env) NewStringBuilderCapacity(n int) handle.Handle {
	b, err := textbuf.NewCapacity(n)
	if err != nil {
		e.ThrowError(err)
		return handle.Null
	}
	return e.register(TypeStringBuilder, b)
}

// NewStringBuilderString creates a builder holding s.
func (e *Env) NewStringBuilderString(s string) handle.Handle {
	return e.register(TypeStringBuilder, textbuf.NewString(s))
}

// NewStringBuffer creates an empty, synchronized buffer.
func (e *Env) NewStringBuffer() handle.Handle {
	return e.register(TypeStringBuffer, textbuf.NewBuffer())
}

// NewStringBufferCapacity creates an empty buffer with capacity n.
func (e *Env) NewStringBufferCapacity(n int) handle.Handle {
	b, err := textbuf.NewBufferCapacity(n)
	if err != nil {
		e.ThrowError(err)
		return handle.Null
	}
	return e.register(TypeStringBuffer, b)
}

// NewStringBufferString creates a buffer holding s.
func (e *Env) NewStringBufferString(s string) handle.Handle {
	return e.register(TypeStringBuffer, textbuf.NewBufferString(s))
}

// Append appends s and returns h.
func (e *Env) Append(h handle.Handle, s string) handle.Handle {
	return e.edit(h, func(b *textbuf.Builder) error {
		b.AppendString(s)
		return nil
	})
}

func (e *Env) AppendInt(h handle.Handle, v int32) handle.Handle {
	return e.edit(h, func(b *textbuf.Builder) error {
		b.AppendInt(v)
		return nil
	})
}

func (e *Env) AppendLong(h handle.Handle, v int64) handle.Handle {
	return e.edit(h, func(b *textbuf.Builder) error {
		b.AppendLong(v)
		return nil
	})
}

func (e *Env) AppendBool(h handle.Handle, v bool) handle.Handle {
	return e.edit(h, func(b *textbuf.Builder) error {
		b.AppendBool(v)
		return nil
	})
}

func (e *Env) AppendFloat(h handle.Handle, v float32) handle.Handle {
	return e.edit(h, func(b *textbuf.Builder) error {
		b.AppendFloat(v)
		return nil
	})
}

func (e *Env) AppendDouble(h handle.Handle, v float64) handle.Handle {
	return e.edit(h, func(b *textbuf.Builder) error {
		b.AppendDouble(v)
		return nil
	})
}

// AppendChar appends a single UTF-16 unit.
func (e *Env) AppendChar(h handle.Handle, c uint16) handle.Handle {
	return e.edit(h, func(b *textbuf.Builder) error {
		b.AppendChar(c)
		return nil
	})
}

// AppendCodePoint appends r as one or two UTF-16 units.
func (e *Env) AppendCodePoint(h handle.Handle, r rune) handle.Handle {
	return e.edit(h, func(b *textbuf.Builder) error {
		_, err := b.AppendCodePoint(r)
		return err
	})
}

// AppendText appends the current contents of the text object src.
func (e *Env) AppendText(h, src handle.Handle) handle.Handle {
	var units []uint16
	if !e.withText(src, func(b *textbuf.Builder) error {
		units = b.Units()
		return nil
	}) {
		return handle.Null
	}
	return e.edit(h, func(b *textbuf.Builder) error {
		_, err := b.AppendChars(units, 0, len(units))
		return err
	})
}

// Insert inserts s at offset and returns h.
func (e *Env) Insert(h handle.Handle, offset int, s string) handle.Handle {
	return e.edit(h, func(b *textbuf.Builder) error {
		_, err := b.InsertString(offset, s)
		return err
	})
}

func (e *Env) InsertInt(h handle.Handle, offset int, v int32) handle.Handle {
	return e.edit(h, func(b *textbuf.Builder) error {
		_, err := b.InsertInt(offset, v)
		return err
	})
}

func (e *Env) InsertLong(h handle.Handle, offset int, v int64) handle.Handle {
	return e.edit(h, func(b *textbuf.Builder) error {
		_, err := b.InsertLong(offset, v)
		return err
	})
}

func (e *Env) InsertBool(h handle.Handle, offset int, v bool) handle.Handle {
	return e.edit(h, func(b *textbuf.Builder) error {
		_, err := b.InsertBool(offset, v)
		return err
	})
}

func (e *Env) InsertChar(h handle.Handle, offset int, c uint16) handle.Handle {
	return e.edit(h, func(b *textbuf.Builder) error {
		_, err := b.InsertChar(offset, c)
		return err
	})
}

func (e *Env) InsertDouble(h handle.Handle, offset int, v float64) handle.Handle {
	return e.edit(h, func(b *textbuf.Builder) error {
		_, err := b.InsertDouble(offset, v)
		return err
	})
}

// IndexOf returns the first UTF-16 index of s, or -1.
func (e *Env) IndexOf(h handle.Handle, s string) int {
	return e.IndexOfFrom(h, s, 0)
}

func (e *Env) IndexOfFrom(h handle.Handle, s string, from int) int {
	i := textbuf.NotFound
	e.withText(h, func(b *textbuf.Builder) error {
		i = b.IndexOfFrom(s, from)
		return nil
	})
	return i
}

// LastIndexOf returns the last UTF-16 index of s, or -1.
func (e *Env) LastIndexOf(h handle.Handle, s string) int {
	i := textbuf.NotFound
	e.withText(h, func(b *textbuf.Builder) error {
		i = b.LastIndexOf(s)
		return nil
	})
	return i
}

func (e *Env) LastIndexOfFrom(h handle.Handle, s string, from int) int {
	i := textbuf.NotFound
	e.withText(h, func(b *textbuf.Builder) error {
		i = b.LastIndexOfFrom(s, from)
		return nil
	})
	return i
}

// Reverse reverses the contents in place, keeping surrogate pairs intact.
func (e *Env) Reverse(h handle.Handle) handle.Handle {
	return e.edit(h, func(b *textbuf.Builder) error {
		b.Reverse()
		return nil
	})
}

// Length returns the length in UTF-16 units.
func (e *Env) Length(h handle.Handle) int {
	var n int
	e.withText(h, func(b *textbuf.Builder) error {
		n = b.Length()
		return nil
	})
	return n
}

func (e *Env) Capacity(h handle.Handle) int {
	var n int
	e.withText(h, func(b *textbuf.Builder) error {
		n = b.Capacity()
		return nil
	})
	return n
}

func (e *Env) EnsureCapacity(h handle.Handle, min int) {
	e.withText(h, func(b *textbuf.Builder) error {
		b.EnsureCapacity(min)
		return nil
	})
}

func (e *Env) TrimToSize(h handle.Handle) {
	e.withText(h, func(b *textbuf.Builder) error {
		b.TrimToSize()
		return nil
	})
}

func (e *Env) SetLength(h handle.Handle, n int) {
	e.withText(h, func(b *textbuf.Builder) error {
		return b.SetLength(n)
	})
}

// CharAt returns the UTF-16 unit at i.
func (e *Env) CharAt(h handle.Handle, i int) uint16 {
	var c uint16
	e.withText(h, func(b *textbuf.Builder) (err error) {
		c, err = b.CharAt(i)
		return err
	})
	return c
}

func (e *Env) SetCharAt(h handle.Handle, i int, c uint16) {
	e.withText(h, func(b *textbuf.Builder) error {
		return b.SetCharAt(i, c)
	})
}

func (e *Env) CodePointAt(h handle.Handle, i int) rune {
	var r rune
	e.withText(h, func(b *textbuf.Builder) (err error) {
		r, err = b.CodePointAt(i)
		return err
	})
	return r
}

// Delete removes the units in [start, end) and returns h.
func (e *Env) Delete(h handle.Handle, start, end int) handle.Handle {
	return e.edit(h, func(b *textbuf.Builder) error {
		_, err := b.Delete(start, end)
		return err
	})
}

func (e *Env) DeleteCharAt(h handle.Handle, i int) handle.Handle {
	return e.edit(h, func(b *textbuf.Builder) error {
		_, err := b.DeleteCharAt(i)
		return err
	})
}

// Replace replaces the units in [start, end) with s and returns h.
func (e *Env) Replace(h handle.Handle, start, end int, s string) handle.Handle {
	return e.edit(h, func(b *textbuf.Builder) error {
		_, err := b.Replace(start, end, s)
		return err
	})
}

// Substring returns the units in [start, end).
func (e *Env) Substring(h handle.Handle, start, end int) string {
	var s string
	e.withText(h, func(b *textbuf.Builder) (err error) {
		s, err = b.SubstringRange(start, end)
		return err
	})
	return s
}

// ToString returns the contents of a builder, buffer or writer.
func (e *Env) ToString(h handle.Handle) string {
	var s string
	e.withText(h, func(b *textbuf.Builder) error {
		s = b.String()
		return nil
	})
	return s
}
