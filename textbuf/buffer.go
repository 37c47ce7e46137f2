package textbuf

import "sync"

// Buffer is the synchronized text buffer. Every call holds the buffer's
// lock for its whole duration.
type Buffer struct {
	mu sync.Mutex
	b  Builder
}

// NewBuffer returns an empty buffer with the default capacity.
func NewBuffer() *Buffer {
	return &Buffer{b: *New()}
}

// NewBufferCapacity returns an empty buffer with capacity n.
func NewBufferCapacity(n int) (*Buffer, error) {
	b, err := NewCapacity(n)
	if err != nil {
		return nil, err
	}
	return &Buffer{b: *b}, nil
}

// NewBufferString returns a buffer holding s with capacity len(s)+16.
func NewBufferString(s string) *Buffer {
	return &Buffer{b: *NewString(s)}
}

// Locked runs fn with exclusive access to the underlying builder.
// fn must not retain the builder or call back into the buffer.
func (sb *Buffer) Locked(fn func(b *Builder)) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	fn(&sb.b)
}

func (sb *Buffer) do(fn func(b *Builder)) *Buffer {
	sb.Locked(fn)
	return sb
}

func (sb *Buffer) try(fn func(b *Builder) error) (*Buffer, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb, fn(&sb.b)
}

func (sb *Buffer) AppendString(s string) *Buffer {
	return sb.do(func(b *Builder) { b.AppendString(s) })
}

func (sb *Buffer) AppendInt(v int32) *Buffer {
	return sb.do(func(b *Builder) { b.AppendInt(v) })
}

func (sb *Buffer) AppendLong(v int64) *Buffer {
	return sb.do(func(b *Builder) { b.AppendLong(v) })
}

func (sb *Buffer) AppendBool(v bool) *Buffer {
	return sb.do(func(b *Builder) { b.AppendBool(v) })
}

func (sb *Buffer) AppendFloat(v float32) *Buffer {
	return sb.do(func(b *Builder) { b.AppendFloat(v) })
}

func (sb *Buffer) AppendDouble(v float64) *Buffer {
	return sb.do(func(b *Builder) { b.AppendDouble(v) })
}

func (sb *Buffer) AppendChar(c uint16) *Buffer {
	return sb.do(func(b *Builder) { b.AppendChar(c) })
}

func (sb *Buffer) AppendCodePoint(r rune) (*Buffer, error) {
	return sb.try(func(b *Builder) error {
		_, err := b.AppendCodePoint(r)
		return err
	})
}

func (sb *Buffer) AppendChars(units []uint16, offset, n int) (*Buffer, error) {
	return sb.try(func(b *Builder) error {
		_, err := b.AppendChars(units, offset, n)
		return err
	})
}

// AppendText appends the content of t. The snapshot of t is taken before
// this buffer is locked, so appending a buffer to itself is safe.
func (sb *Buffer) AppendText(t Text) *Buffer {
	if t == nil {
		return sb.AppendString("null")
	}
	units := t.Units()
	return sb.do(func(b *Builder) { b.appendUnits(units) })
}

func (sb *Buffer) InsertString(offset int, s string) (*Buffer, error) {
	return sb.try(func(b *Builder) error {
		_, err := b.InsertString(offset, s)
		return err
	})
}

func (sb *Buffer) InsertChar(offset int, c uint16) (*Buffer, error) {
	return sb.try(func(b *Builder) error {
		_, err := b.InsertChar(offset, c)
		return err
	})
}

func (sb *Buffer) InsertChars(offset int, units []uint16, start, n int) (*Buffer, error) {
	return sb.try(func(b *Builder) error {
		_, err := b.InsertChars(offset, units, start, n)
		return err
	})
}

func (sb *Buffer) InsertBool(offset int, v bool) (*Buffer, error) {
	return sb.try(func(b *Builder) error {
		_, err := b.InsertBool(offset, v)
		return err
	})
}

func (sb *Buffer) InsertInt(offset int, v int32) (*Buffer, error) {
	return sb.try(func(b *Builder) error {
		_, err := b.InsertInt(offset, v)
		return err
	})
}

func (sb *Buffer) InsertLong(offset int, v int64) (*Buffer, error) {
	return sb.try(func(b *Builder) error {
		_, err := b.InsertLong(offset, v)
		return err
	})
}

func (sb *Buffer) InsertFloat(offset int, v float32) (*Buffer, error) {
	return sb.try(func(b *Builder) error {
		_, err := b.InsertFloat(offset, v)
		return err
	})
}

func (sb *Buffer) InsertDouble(offset int, v float64) (*Buffer, error) {
	return sb.try(func(b *Builder) error {
		_, err := b.InsertDouble(offset, v)
		return err
	})
}

func (sb *Buffer) IndexOf(needle string) (i int) {
	sb.Locked(func(b *Builder) { i = b.IndexOf(needle) })
	return i
}

func (sb *Buffer) IndexOfFrom(needle string, from int) (i int) {
	sb.Locked(func(b *Builder) { i = b.IndexOfFrom(needle, from) })
	return i
}

func (sb *Buffer) LastIndexOf(needle string) (i int) {
	sb.Locked(func(b *Builder) { i = b.LastIndexOf(needle) })
	return i
}

func (sb *Buffer) LastIndexOfFrom(needle string, from int) (i int) {
	sb.Locked(func(b *Builder) { i = b.LastIndexOfFrom(needle, from) })
	return i
}

func (sb *Buffer) Reverse() *Buffer {
	return sb.do(func(b *Builder) { b.Reverse() })
}

func (sb *Buffer) Length() (n int) {
	sb.Locked(func(b *Builder) { n = b.Length() })
	return n
}

func (sb *Buffer) Capacity() (n int) {
	sb.Locked(func(b *Builder) { n = b.Capacity() })
	return n
}

func (sb *Buffer) EnsureCapacity(min int) {
	sb.Locked(func(b *Builder) { b.EnsureCapacity(min) })
}

func (sb *Buffer) TrimToSize() {
	sb.Locked(func(b *Builder) { b.TrimToSize() })
}

func (sb *Buffer) SetLength(n int) error {
	_, err := sb.try(func(b *Builder) error { return b.SetLength(n) })
	return err
}

func (sb *Buffer) CharAt(i int) (c uint16, err error) {
	sb.Locked(func(b *Builder) { c, err = b.CharAt(i) })
	return c, err
}

func (sb *Buffer) SetCharAt(i int, c uint16) error {
	_, err := sb.try(func(b *Builder) error { return b.SetCharAt(i, c) })
	return err
}

func (sb *Buffer) CodePointAt(i int) (r rune, err error) {
	sb.Locked(func(b *Builder) { r, err = b.CodePointAt(i) })
	return r, err
}

func (sb *Buffer) CodePointBefore(i int) (r rune, err error) {
	sb.Locked(func(b *Builder) { r, err = b.CodePointBefore(i) })
	return r, err
}

func (sb *Buffer) CodePointCount(begin, end int) (n int, err error) {
	sb.Locked(func(b *Builder) { n, err = b.CodePointCount(begin, end) })
	return n, err
}

func (sb *Buffer) Delete(start, end int) (*Buffer, error) {
	return sb.try(func(b *Builder) error {
		_, err := b.Delete(start, end)
		return err
	})
}

func (sb *Buffer) DeleteCharAt(i int) (*Buffer, error) {
	return sb.try(func(b *Builder) error {
		_, err := b.DeleteCharAt(i)
		return err
	})
}

func (sb *Buffer) Replace(start, end int, s string) (*Buffer, error) {
	return sb.try(func(b *Builder) error {
		_, err := b.Replace(start, end, s)
		return err
	})
}

func (sb *Buffer) Substring(start int) (s string, err error) {
	sb.Locked(func(b *Builder) { s, err = b.Substring(start) })
	return s, err
}

func (sb *Buffer) SubstringRange(start, end int) (s string, err error) {
	sb.Locked(func(b *Builder) { s, err = b.SubstringRange(start, end) })
	return s, err
}

func (sb *Buffer) String() (s string) {
	sb.Locked(func(b *Builder) { s = b.String() })
	return s
}

func (sb *Buffer) Units() (u []uint16) {
	sb.Locked(func(b *Builder) { u = b.Units() })
	return u
}

func (sb *Buffer) Write(p []byte) (int, error) {
	sb.Locked(func(b *Builder) { b.Write(p) })
	return len(p), nil
}

func (sb *Buffer) WriteString(s string) (int, error) {
	sb.AppendString(s)
	return len(s), nil
}

func (sb *Buffer) Reset() {
	sb.Locked(func(b *Builder) { b.Reset() })
}
