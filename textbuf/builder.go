package textbuf

import (
	"strconv"
	"unicode/utf8"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/internal/jtext"
)

// Builder is the unsynchronized text buffer.
// The zero value is an empty builder with no reserved capacity.
type Builder struct {
	units []uint16
}

// New returns an empty builder with the default capacity.
func New() *Builder {
	return &Builder{units: make([]uint16, 0, DefaultCapacity)}
}

// NewCapacity returns an empty builder with capacity n.
func NewCapacity(n int) (*Builder, error) {
	if n < 0 {
		return nil, errors.New(errors.PhaseBuffer, errors.KindInvalidInput).
			Value(n).
			Detail("negative capacity %d", n).
			Build()
	}
	return &Builder{units: make([]uint16, 0, n)}, nil
}

// NewString returns a builder holding s with capacity len(s)+16.
func NewString(s string) *Builder {
	n := jtext.Len(s)
	b := &Builder{units: make([]uint16, 0, n+DefaultCapacity)}
	b.units = jtext.AppendString(b.units, s)
	return b
}

// NewUnits returns a builder holding a copy of units.
func NewUnits(units []uint16) *Builder {
	b := &Builder{units: make([]uint16, 0, len(units)+DefaultCapacity)}
	b.units = append(b.units, units...)
	return b
}

// grow makes room for at least min units using the host growth policy.
func (b *Builder) grow(min int) {
	if min <= cap(b.units) {
		return
	}
	n := cap(b.units)*2 + 2
	if n < min {
		n = min
	}
	units := make([]uint16, len(b.units), n)
	copy(units, b.units)
	b.units = units
}

func (b *Builder) appendUnits(u []uint16) {
	b.grow(len(b.units) + len(u))
	b.units = append(b.units, u...)
}

func (b *Builder) insertUnits(offset int, u []uint16) error {
	if offset < 0 || offset > len(b.units) {
		return errors.OutOfBounds(errors.PhaseBuffer, []string{"insert"}, offset, len(b.units))
	}
	n := len(b.units)
	b.grow(n + len(u))
	b.units = b.units[:n+len(u)]
	copy(b.units[offset+len(u):], b.units[offset:n])
	copy(b.units[offset:], u)
	return nil
}

// AppendString appends s.
func (b *Builder) AppendString(s string) *Builder {
	b.appendUnits(jtext.Encode(s))
	return b
}

// AppendInt appends the base-10 text of v.
func (b *Builder) AppendInt(v int32) *Builder {
	return b.AppendString(strconv.FormatInt(int64(v), 10))
}

// AppendLong appends the base-10 text of v.
func (b *Builder) AppendLong(v int64) *Builder {
	return b.AppendString(strconv.FormatInt(v, 10))
}

// AppendBool appends "true" or "false".
func (b *Builder) AppendBool(v bool) *Builder {
	return b.AppendString(strconv.FormatBool(v))
}

// AppendFloat appends the host text of a float.
func (b *Builder) AppendFloat(v float32) *Builder {
	return b.AppendString(jtext.FormatFloat(v))
}

// AppendDouble appends the host text of a double.
func (b *Builder) AppendDouble(v float64) *Builder {
	return b.AppendString(jtext.FormatDouble(v))
}

// AppendChar appends a single code unit.
func (b *Builder) AppendChar(c uint16) *Builder {
	b.grow(len(b.units) + 1)
	b.units = append(b.units, c)
	return b
}

// AppendCodePoint appends r as one or two code units.
func (b *Builder) AppendCodePoint(r rune) (*Builder, error) {
	if r < 0 || r > utf8.MaxRune {
		return b, errors.New(errors.PhaseBuffer, errors.KindInvalidInput).
			Value(r).
			Detail("invalid code point %#x", r).
			Build()
	}
	b.appendUnits(jtext.AppendRune(nil, r))
	return b, nil
}

// AppendChars appends units[offset:offset+n].
func (b *Builder) AppendChars(units []uint16, offset, n int) (*Builder, error) {
	if offset < 0 || n < 0 || offset+n > len(units) {
		return b, errors.RangeOutOfBounds(errors.PhaseBuffer, []string{"append"}, offset, offset+n, len(units))
	}
	b.appendUnits(units[offset : offset+n])
	return b, nil
}

// AppendText appends the content of another buffer.
// Appending a builder to itself doubles its content.
func (b *Builder) AppendText(t Text) *Builder {
	if t == nil {
		return b.AppendString("null")
	}
	b.appendUnits(t.Units())
	return b
}

// InsertString inserts s at offset.
func (b *Builder) InsertString(offset int, s string) (*Builder, error) {
	return b, b.insertUnits(offset, jtext.Encode(s))
}

// InsertChar inserts one code unit at offset.
func (b *Builder) InsertChar(offset int, c uint16) (*Builder, error) {
	return b, b.insertUnits(offset, []uint16{c})
}

// InsertChars inserts units[start:start+n] at offset.
func (b *Builder) InsertChars(offset int, units []uint16, start, n int) (*Builder, error) {
	if start < 0 || n < 0 || start+n > len(units) {
		return b, errors.RangeOutOfBounds(errors.PhaseBuffer, []string{"insert"}, start, start+n, len(units))
	}
	return b, b.insertUnits(offset, units[start:start+n])
}

func (b *Builder) InsertBool(offset int, v bool) (*Builder, error) {
	return b.InsertString(offset, strconv.FormatBool(v))
}

func (b *Builder) InsertInt(offset int, v int32) (*Builder, error) {
	return b.InsertString(offset, strconv.FormatInt(int64(v), 10))
}

func (b *Builder) InsertLong(offset int, v int64) (*Builder, error) {
	return b.InsertString(offset, strconv.FormatInt(v, 10))
}

func (b *Builder) InsertFloat(offset int, v float32) (*Builder, error) {
	return b.InsertString(offset, jtext.FormatFloat(v))
}

func (b *Builder) InsertDouble(offset int, v float64) (*Builder, error) {
	return b.InsertString(offset, jtext.FormatDouble(v))
}

// IndexOf returns the leftmost position of needle, or NotFound.
// The empty needle is found at 0.
func (b *Builder) IndexOf(needle string) int {
	return jtext.Index(b.units, jtext.Encode(needle), 0)
}

// IndexOfFrom is IndexOf starting the search at from.
func (b *Builder) IndexOfFrom(needle string, from int) int {
	return jtext.Index(b.units, jtext.Encode(needle), from)
}

// LastIndexOf returns the rightmost position of needle, or NotFound.
func (b *Builder) LastIndexOf(needle string) int {
	return jtext.LastIndex(b.units, jtext.Encode(needle), len(b.units))
}

// LastIndexOfFrom searches backward starting at from.
func (b *Builder) LastIndexOfFrom(needle string, from int) int {
	return jtext.LastIndex(b.units, jtext.Encode(needle), from)
}

// Reverse reverses the content in place, keeping surrogate pairs intact.
func (b *Builder) Reverse() *Builder {
	jtext.Reverse(b.units)
	return b
}

// Length returns the number of code units.
func (b *Builder) Length() int { return len(b.units) }

// Capacity returns the number of units the builder holds before growing.
func (b *Builder) Capacity() int { return cap(b.units) }

// EnsureCapacity grows the builder so it holds at least min units.
func (b *Builder) EnsureCapacity(min int) {
	if min > 0 {
		b.grow(min)
	}
}

// TrimToSize shrinks the capacity to the current length.
func (b *Builder) TrimToSize() {
	if cap(b.units) > len(b.units) {
		units := make([]uint16, len(b.units))
		copy(units, b.units)
		b.units = units
	}
}

// SetLength truncates the content or pads it with NUL units.
func (b *Builder) SetLength(n int) error {
	if n < 0 {
		return errors.OutOfBounds(errors.PhaseBuffer, []string{"setLength"}, n, len(b.units))
	}
	b.grow(n)
	old := len(b.units)
	b.units = b.units[:n]
	if n > old {
		clear(b.units[old:])
	}
	return nil
}

// CharAt returns the code unit at i.
func (b *Builder) CharAt(i int) (uint16, error) {
	if i < 0 || i >= len(b.units) {
		return 0, errors.OutOfBounds(errors.PhaseBuffer, []string{"charAt"}, i, len(b.units))
	}
	return b.units[i], nil
}

// SetCharAt replaces the code unit at i.
func (b *Builder) SetCharAt(i int, c uint16) error {
	if i < 0 || i >= len(b.units) {
		return errors.OutOfBounds(errors.PhaseBuffer, []string{"setCharAt"}, i, len(b.units))
	}
	b.units[i] = c
	return nil
}

// CodePointAt returns the code point starting at i.
func (b *Builder) CodePointAt(i int) (rune, error) {
	if i < 0 || i >= len(b.units) {
		return 0, errors.OutOfBounds(errors.PhaseBuffer, []string{"codePointAt"}, i, len(b.units))
	}
	return jtext.CodePointAt(b.units, i), nil
}

// CodePointBefore returns the code point ending before i.
func (b *Builder) CodePointBefore(i int) (rune, error) {
	if i < 1 || i > len(b.units) {
		return 0, errors.OutOfBounds(errors.PhaseBuffer, []string{"codePointBefore"}, i, len(b.units))
	}
	return jtext.CodePointBefore(b.units, i), nil
}

// CodePointCount counts code points in [begin, end).
func (b *Builder) CodePointCount(begin, end int) (int, error) {
	if begin < 0 || end > len(b.units) || begin > end {
		return 0, errors.RangeOutOfBounds(errors.PhaseBuffer, []string{"codePointCount"}, begin, end, len(b.units))
	}
	return jtext.CodePointCount(b.units, begin, end), nil
}

// Delete removes [start, end). end is clamped to the length.
func (b *Builder) Delete(start, end int) (*Builder, error) {
	n := len(b.units)
	if end > n {
		end = n
	}
	if start < 0 || start > end {
		return b, errors.RangeOutOfBounds(errors.PhaseBuffer, []string{"delete"}, start, end, n)
	}
	b.units = append(b.units[:start], b.units[end:]...)
	return b, nil
}

// DeleteCharAt removes the code unit at i.
func (b *Builder) DeleteCharAt(i int) (*Builder, error) {
	if i < 0 || i >= len(b.units) {
		return b, errors.OutOfBounds(errors.PhaseBuffer, []string{"deleteCharAt"}, i, len(b.units))
	}
	b.units = append(b.units[:i], b.units[i+1:]...)
	return b, nil
}

// Replace replaces [start, end) with s. end is clamped to the length.
func (b *Builder) Replace(start, end int, s string) (*Builder, error) {
	n := len(b.units)
	if end > n {
		end = n
	}
	if start < 0 || start > n || start > end {
		return b, errors.RangeOutOfBounds(errors.PhaseBuffer, []string{"replace"}, start, end, n)
	}
	u := jtext.Encode(s)
	tail := append([]uint16(nil), b.units[end:]...)
	b.units = b.units[:start]
	b.appendUnits(u)
	b.appendUnits(tail)
	return b, nil
}

// Substring returns the content from start to the end.
func (b *Builder) Substring(start int) (string, error) {
	return b.SubstringRange(start, len(b.units))
}

// SubstringRange returns the content of [start, end).
func (b *Builder) SubstringRange(start, end int) (string, error) {
	if start < 0 || end > len(b.units) || start > end {
		return "", errors.RangeOutOfBounds(errors.PhaseBuffer, []string{"substring"}, start, end, len(b.units))
	}
	return jtext.Decode(b.units[start:end]), nil
}

// String returns a snapshot of the content.
func (b *Builder) String() string { return jtext.Decode(b.units) }

// Units returns a copy of the content.
func (b *Builder) Units() []uint16 {
	return append([]uint16(nil), b.units...)
}

// Write appends p decoded as UTF-8.
func (b *Builder) Write(p []byte) (int, error) {
	b.appendUnits(jtext.Encode(string(p)))
	return len(p), nil
}

// WriteString appends s.
func (b *Builder) WriteString(s string) (int, error) {
	b.AppendString(s)
	return len(s), nil
}

// Reset empties the builder and keeps its capacity.
func (b *Builder) Reset() {
	b.units = b.units[:0]
}
