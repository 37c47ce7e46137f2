package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/internal/jtext"
)

const defaultPrecision = 6

// Render formats args against the parsed format. Arguments beyond those the
// directives reference are ignored.
func (s *Spec) Render(args []Arg) (string, error) {
	var b strings.Builder
	if err := s.render(&b, args); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Spec) render(b *strings.Builder, args []Arg) error {
	for _, tok := range s.Tokens {
		d := tok.Directive
		if d == nil {
			b.WriteString(tok.Literal)
			continue
		}
		var arg Arg
		if d.TakesArg() {
			if d.Arg >= len(args) {
				return errors.New(errors.PhaseFormat, errors.KindFormatArgCount).
					Value(d.Ordinal).
					Detail("directive %d (%s) needs argument %d, got %d arguments", d.Ordinal, d, d.Arg+1, len(args)).
					Build()
			}
			arg = args[d.Arg]
		}
		text, err := renderDirective(d, arg)
		if err != nil {
			return err
		}
		b.WriteString(text)
	}
	return nil
}

func renderDirective(d *Directive, arg Arg) (string, error) {
	switch d.Conv {
	case ConvPercent:
		return justify(d, "%"), nil
	case ConvNewline:
		return "\n", nil
	case ConvString, ConvStringUp:
		return textual(d, arg.Text()), nil
	case ConvBool, ConvBoolUp:
		s := "true"
		switch arg.kind {
		case KindNull:
			s = "false"
		case KindBool:
			s = strconv.FormatBool(arg.i != 0)
		}
		return textual(d, s), nil
	case ConvChar:
		return renderChar(d, arg)
	}

	if arg.IsNull() {
		return textual(d, "null"), nil
	}

	switch d.Conv {
	case ConvDecimal:
		if !arg.integral() {
			return "", mismatch(d, arg)
		}
		digits := strconv.FormatUint(absInt(arg.i), 10)
		if d.Flags.Has(FlagGroup) {
			digits = group(digits)
		}
		return numeric(d, arg.i < 0, digits), nil
	case ConvHex, ConvHexUp:
		if !arg.integral() {
			return "", mismatch(d, arg)
		}
		s := numeric(d, false, strconv.FormatUint(twosComplement(arg), 16))
		if d.Conv == ConvHexUp {
			s = strings.ToUpper(s)
		}
		return s, nil
	case ConvFixed, ConvScientific, ConvSciUp:
		if !arg.floating() {
			return "", mismatch(d, arg)
		}
		s := renderFloat(d, arg.f)
		if d.Conv == ConvSciUp {
			s = strings.ToUpper(s)
		}
		return s, nil
	}
	return "", mismatch(d, arg)
}

func mismatch(d *Directive, arg Arg) error {
	return errors.New(errors.PhaseFormat, errors.KindFormatTypeMismatch).
		Value(d.Ordinal).
		HostType(arg.kind.String()).
		Detail("directive %d (%s) cannot format %s", d.Ordinal, d, arg.kind).
		Build()
}

// renderChar renders %c. Output is a Go string, so a lone surrogate unit or
// code point in U+D800..U+DFFF renders as U+FFFD.
func renderChar(d *Directive, arg Arg) (string, error) {
	switch arg.kind {
	case KindNull:
		return justify(d, "null"), nil
	case KindChar:
		return justify(d, jtext.Decode([]uint16{uint16(arg.i)})), nil
	case KindInt, KindShort, KindByte:
		if arg.i < 0 || arg.i > 0x10FFFF {
			return "", errors.New(errors.PhaseFormat, errors.KindFormatTypeMismatch).
				Value(d.Ordinal).
				HostType(arg.kind.String()).
				Detail("directive %d (%s): invalid code point %#x", d.Ordinal, d, arg.i).
				Build()
		}
		return justify(d, jtext.Decode(jtext.AppendRune(nil, rune(arg.i)))), nil
	}
	return "", mismatch(d, arg)
}

// textual applies precision truncation, case and width to s.
func textual(d *Directive, s string) string {
	if d.Precision >= 0 {
		if u := jtext.Encode(s); d.Precision < len(u) {
			s = jtext.Decode(u[:d.Precision])
		}
	}
	switch d.Conv {
	case ConvStringUp, ConvBoolUp, ConvHexUp, ConvSciUp:
		s = strings.ToUpper(s)
	}
	return justify(d, s)
}

// justify pads s with spaces to the directive width.
func justify(d *Directive, s string) string {
	n := jtext.Len(s)
	if d.Width <= n {
		return s
	}
	pad := strings.Repeat(" ", d.Width-n)
	if d.Flags.Has(FlagLeft) {
		return s + pad
	}
	return pad + s
}

// numeric writes the sign, zero padding and body, then justifies.
func numeric(d *Directive, neg bool, body string) string {
	var b strings.Builder
	switch {
	case neg:
		b.WriteByte('-')
	case d.Flags.Has(FlagPlus):
		b.WriteByte('+')
	}
	if d.Flags.Has(FlagZero) {
		for n := b.Len() + len(body); n < d.Width; n++ {
			b.WriteByte('0')
		}
	}
	b.WriteString(body)
	return justify(d, b.String())
}

func absInt(v int64) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}
	return uint64(v)
}

// twosComplement returns the bits of an integral argument at its own width.
func twosComplement(a Arg) uint64 {
	switch a.kind {
	case KindByte:
		return uint64(uint8(a.i))
	case KindShort:
		return uint64(uint16(a.i))
	case KindInt:
		return uint64(uint32(a.i))
	}
	return uint64(a.i)
}

// group inserts ',' between groups of three digits.
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func renderFloat(d *Directive, v float64) string {
	if math.IsNaN(v) {
		return justify(d, "NaN")
	}
	neg := math.Signbit(v)
	if math.IsInf(v, 0) {
		s := "Infinity"
		switch {
		case neg:
			s = "-" + s
		case d.Flags.Has(FlagPlus):
			s = "+" + s
		}
		return justify(d, s)
	}

	prec := d.Precision
	if prec < 0 {
		prec = defaultPrecision
	}
	dec := jtext.ShortestDecimal(v, 64)

	if d.Conv == ConvFixed {
		body := dec.Fixed(prec)
		if d.Flags.Has(FlagGroup) {
			intPart, frac, ok := strings.Cut(body, ".")
			body = group(intPart)
			if ok {
				body += "." + frac
			}
		}
		return numeric(d, neg, body)
	}

	mant, exp := dec.Scientific(prec)
	var b strings.Builder
	b.WriteString(mant)
	b.WriteByte('e')
	if exp < 0 {
		b.WriteByte('-')
		exp = -exp
	} else {
		b.WriteByte('+')
	}
	if exp < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(exp))
	return numeric(d, neg, b.String())
}
