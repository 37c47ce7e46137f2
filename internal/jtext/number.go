package jtext

import (
	"math"
	"strconv"
	"strings"
)

// Decimal is a finite float as its shortest round-tripping decimal digits:
// the value is Digits[0].Digits[1:] x 10^Exp. Zero is Digits "0", Exp 0.
type Decimal struct {
	Digits []byte
	Exp    int
	Neg    bool
}

// ShortestDecimal returns the shortest decimal that parses back to v at the
// given bit size (32 or 64). v must be finite.
func ShortestDecimal(v float64, bitSize int) Decimal {
	s := strconv.FormatFloat(v, 'e', -1, bitSize)
	d := Decimal{Neg: math.Signbit(v)}
	if d.Neg {
		s = s[1:]
	}
	mant, exp, _ := strings.Cut(s, "e")
	d.Exp, _ = strconv.Atoi(exp)
	d.Digits = []byte(strings.Replace(mant, ".", "", 1))
	return d
}

// IsZero reports whether every digit is zero.
func (d Decimal) IsZero() bool {
	for _, c := range d.Digits {
		if c != '0' {
			return false
		}
	}
	return true
}

// Round keeps n significant digits, rounding half up on the digits
// themselves. n may be zero or negative, in which case the result is either
// zero or a single 1 carried into the next power of ten.
func (d Decimal) Round(n int) Decimal {
	if n >= len(d.Digits) {
		return d
	}
	out := Decimal{Neg: d.Neg, Exp: d.Exp}
	if n < 0 {
		out.Digits = []byte{'0'}
		out.Exp = 0
		return out
	}
	if n == 0 {
		if d.Digits[0] >= '5' {
			out.Digits = []byte{'1'}
			out.Exp++
			return out
		}
		out.Digits = []byte{'0'}
		out.Exp = 0
		return out
	}

	digits := append([]byte(nil), d.Digits[:n]...)
	if d.Digits[n] >= '5' {
		i := n - 1
		for ; i >= 0; i-- {
			if digits[i] < '9' {
				digits[i]++
				break
			}
			digits[i] = '0'
		}
		if i < 0 {
			digits = append([]byte{'1'}, digits[:n-1]...)
			out.Exp++
		}
	}
	out.Digits = digits
	return out
}

// Fixed renders d with exactly prec fractional digits, rounding half up.
// The sign is not included.
func (d Decimal) Fixed(prec int) string {
	r := d.Round(d.Exp + 1 + prec)
	var b strings.Builder
	if r.IsZero() {
		b.WriteByte('0')
		if prec > 0 {
			b.WriteByte('.')
			b.WriteString(strings.Repeat("0", prec))
		}
		return b.String()
	}

	point := r.Exp + 1
	digit := func(i int) byte {
		if i >= 0 && i < len(r.Digits) {
			return r.Digits[i]
		}
		return '0'
	}
	if point <= 0 {
		b.WriteByte('0')
	} else {
		for i := 0; i < point; i++ {
			b.WriteByte(digit(i))
		}
	}
	if prec > 0 {
		b.WriteByte('.')
		for i := 0; i < prec; i++ {
			b.WriteByte(digit(point + i))
		}
	}
	return b.String()
}

// Scientific renders d as a mantissa with prec fractional digits and
// returns the mantissa and the decimal exponent separately.
func (d Decimal) Scientific(prec int) (string, int) {
	if d.IsZero() {
		if prec > 0 {
			return "0." + strings.Repeat("0", prec), 0
		}
		return "0", 0
	}
	r := d.Round(prec + 1)
	var b strings.Builder
	b.WriteByte(r.Digits[0])
	if prec > 0 {
		b.WriteByte('.')
		for i := 1; i <= prec; i++ {
			if i < len(r.Digits) {
				b.WriteByte(r.Digits[i])
			} else {
				b.WriteByte('0')
			}
		}
	}
	return b.String(), r.Exp
}

// FormatDouble returns the host's canonical text for a double.
func FormatDouble(v float64) string {
	return formatHost(v, 64)
}

// FormatFloat returns the host's canonical text for a float.
func FormatFloat(v float32) string {
	return formatHost(float64(v), 32)
}

func formatHost(v float64, bitSize int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	d := ShortestDecimal(v, bitSize)
	var b strings.Builder
	if d.Neg {
		b.WriteByte('-')
	}
	if d.IsZero() {
		b.WriteString("0.0")
		return b.String()
	}

	abs := math.Abs(v)
	if abs >= 1e-3 && abs < 1e7 {
		point := d.Exp + 1
		if point <= 0 {
			b.WriteString("0.")
			b.WriteString(strings.Repeat("0", -point))
			b.Write(d.Digits)
			return b.String()
		}
		for i := 0; i < point; i++ {
			if i < len(d.Digits) {
				b.WriteByte(d.Digits[i])
			} else {
				b.WriteByte('0')
			}
		}
		b.WriteByte('.')
		if point < len(d.Digits) {
			b.Write(d.Digits[point:])
		} else {
			b.WriteByte('0')
		}
		return b.String()
	}

	b.WriteByte(d.Digits[0])
	b.WriteByte('.')
	if len(d.Digits) > 1 {
		b.Write(d.Digits[1:])
	} else {
		b.WriteByte('0')
	}
	b.WriteByte('E')
	b.WriteString(strconv.Itoa(d.Exp))
	return b.String()
}
