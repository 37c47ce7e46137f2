// Package jtext holds the host text rules shared by the buffer, stream and
// format packages: UTF-16 code unit handling and host number-to-text forms.
package jtext

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Encode converts a Go string to UTF-16 code units.
// Invalid UTF-8 bytes become U+FFFD.
func Encode(s string) []uint16 {
	return AppendString(make([]uint16, 0, len(s)), s)
}

// AppendString appends the UTF-16 form of s to dst.
func AppendString(dst []uint16, s string) []uint16 {
	for _, r := range s {
		dst = AppendRune(dst, r)
	}
	return dst
}

// AppendRune appends r as one or two code units.
func AppendRune(dst []uint16, r rune) []uint16 {
	if r >= 0x10000 && r <= utf8.MaxRune {
		hi, lo := utf16.EncodeRune(r)
		return append(dst, uint16(hi), uint16(lo))
	}
	if r < 0 || r > utf8.MaxRune {
		r = utf8.RuneError
	}
	return append(dst, uint16(r))
}

// Decode converts UTF-16 code units to a Go string.
// Unpaired surrogates become U+FFFD.
func Decode(units []uint16) string {
	buf := make([]byte, 0, len(units))
	for i := 0; i < len(units); {
		r, n := DecodeRune(units, i)
		buf = utf8.AppendRune(buf, r)
		i += n
	}
	return string(buf)
}

// DecodeRune decodes the code point starting at units[i] and returns it with
// the number of units consumed. An unpaired surrogate decodes as itself with
// width 1, which utf8 encodes as U+FFFD.
func DecodeRune(units []uint16, i int) (rune, int) {
	u := units[i]
	if IsHighSurrogate(u) && i+1 < len(units) && IsLowSurrogate(units[i+1]) {
		return utf16.DecodeRune(rune(u), rune(units[i+1])), 2
	}
	return rune(u), 1
}

// Len returns the UTF-16 length of s.
func Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func IsHighSurrogate(u uint16) bool { return u >= 0xD800 && u < 0xDC00 }
func IsLowSurrogate(u uint16) bool  { return u >= 0xDC00 && u < 0xE000 }

// CodePointAt returns the code point at index i, combining a surrogate pair
// when units[i] is a high surrogate followed by a low one.
func CodePointAt(units []uint16, i int) rune {
	r, _ := DecodeRune(units, i)
	return r
}

// CodePointBefore returns the code point ending just before index i.
func CodePointBefore(units []uint16, i int) rune {
	lo := units[i-1]
	if IsLowSurrogate(lo) && i >= 2 && IsHighSurrogate(units[i-2]) {
		return utf16.DecodeRune(rune(units[i-2]), rune(lo))
	}
	return rune(lo)
}

// CodePointCount counts code points in units[begin:end]. Unpaired
// surrogates count as one code point each.
func CodePointCount(units []uint16, begin, end int) int {
	n := 0
	for i := begin; i < end; {
		if IsHighSurrogate(units[i]) && i+1 < end && IsLowSurrogate(units[i+1]) {
			i += 2
		} else {
			i++
		}
		n++
	}
	return n
}

// Reverse reverses units in place without splitting surrogate pairs.
func Reverse(units []uint16) {
	n := len(units)
	if n < 2 {
		return
	}
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		units[i], units[j] = units[j], units[i]
	}
	// pairs now read low,high; swap them back
	for i := 0; i < n-1; i++ {
		if IsLowSurrogate(units[i]) && IsHighSurrogate(units[i+1]) {
			units[i], units[i+1] = units[i+1], units[i]
			i++
		}
	}
}

// Index returns the first index >= from at which needle occurs, or -1.
// An empty needle matches at from clamped to [0, len(haystack)].
func Index(haystack, needle []uint16, from int) int {
	if from < 0 {
		from = 0
	}
	if from > len(haystack) {
		if len(needle) == 0 {
			return len(haystack)
		}
		return -1
	}
	last := len(haystack) - len(needle)
outer:
	for i := from; i <= last; i++ {
		for j, u := range needle {
			if haystack[i+j] != u {
				continue outer
			}
		}
		return i
	}
	return -1
}

// LastIndex returns the last index <= from at which needle occurs, or -1.
func LastIndex(haystack, needle []uint16, from int) int {
	if last := len(haystack) - len(needle); from > last {
		from = last
	}
outer:
	for i := from; i >= 0; i-- {
		for j, u := range needle {
			if haystack[i+j] != u {
				continue outer
			}
		}
		return i
	}
	return -1
}
