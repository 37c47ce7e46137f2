package format

import (
	"strconv"
	"strings"

	"github.com/wippyai/hostbridge/errors"
)

// Flags is the set of flags on a directive.
type Flags uint8

const (
	FlagLeft  Flags = 1 << iota // '-'
	FlagZero                    // '0'
	FlagPlus                    // '+'
	FlagGroup                   // ','
)

// Has reports whether every flag in f2 is set.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

func (f Flags) String() string {
	var b strings.Builder
	for _, fc := range flagChars {
		if f.Has(fc.flag) {
			b.WriteByte(fc.c)
		}
	}
	return b.String()
}

var flagChars = []struct {
	c    byte
	flag Flags
}{
	{'-', FlagLeft},
	{'0', FlagZero},
	{'+', FlagPlus},
	{',', FlagGroup},
}

func flagFor(c byte) (Flags, bool) {
	for _, fc := range flagChars {
		if fc.c == c {
			return fc.flag, true
		}
	}
	return 0, false
}

// Conversions understood by the engine.
const (
	ConvString     = 's'
	ConvStringUp   = 'S'
	ConvDecimal    = 'd'
	ConvHex        = 'x'
	ConvHexUp      = 'X'
	ConvFixed      = 'f'
	ConvScientific = 'e'
	ConvSciUp      = 'E'
	ConvBool       = 'b'
	ConvBoolUp     = 'B'
	ConvChar       = 'c'
	ConvPercent    = '%'
	ConvNewline    = 'n'
)

// allowed lists the flags each conversion accepts and whether it takes a
// precision.
var allowed = map[byte]struct {
	flags     Flags
	precision bool
}{
	ConvString:     {FlagLeft, true},
	ConvStringUp:   {FlagLeft, true},
	ConvBool:       {FlagLeft, true},
	ConvBoolUp:     {FlagLeft, true},
	ConvChar:       {FlagLeft, false},
	ConvDecimal:    {FlagLeft | FlagZero | FlagPlus | FlagGroup, false},
	ConvHex:        {FlagLeft | FlagZero, false},
	ConvHexUp:      {FlagLeft | FlagZero, false},
	ConvFixed:      {FlagLeft | FlagZero | FlagPlus | FlagGroup, true},
	ConvScientific: {FlagLeft | FlagZero | FlagPlus, true},
	ConvSciUp:      {FlagLeft | FlagZero | FlagPlus, true},
	ConvPercent:    {FlagLeft, false},
	ConvNewline:    {0, false},
}

// Directive is one parsed conversion.
type Directive struct {
	Flags Flags
	// Width is the minimum field width in UTF-16 units, or -1.
	Width int
	// Precision is -1 when absent.
	Precision int
	Conv      byte
	// Arg is the zero-based argument index, or -1 for % and n.
	Arg int
	// Ordinal is the zero-based position of the directive in the format.
	Ordinal int
}

// TakesArg reports whether the directive consumes an argument.
func (d *Directive) TakesArg() bool { return d.Arg >= 0 }

func (d *Directive) String() string {
	var b strings.Builder
	b.WriteByte('%')
	b.WriteString(d.Flags.String())
	if d.Width >= 0 {
		b.WriteString(strconv.Itoa(d.Width))
	}
	if d.Precision >= 0 {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(d.Precision))
	}
	b.WriteByte(d.Conv)
	return b.String()
}

// Token is either a literal run or a directive.
type Token struct {
	Directive *Directive
	Literal   string
}

// Spec is a parsed format string.
type Spec struct {
	Tokens []Token
	// Args is the number of arguments the directives reference.
	Args int
}

// Parse parses a printf-style format string.
//
// The directive grammar is %[index$][flags][width][.precision]conv with
// flags from "-0+,". Flag and precision combinations the conversion does
// not accept fail with a format_flag_conflict error; malformed directives
// fail with format_syntax.
func Parse(format string) (*Spec, error) {
	spec := &Spec{}
	var lit strings.Builder
	next := 0
	ordinal := 0

	for i := 0; i < len(format); {
		c := format[i]
		if c != '%' {
			lit.WriteByte(c)
			i++
			continue
		}
		if lit.Len() > 0 {
			spec.Tokens = append(spec.Tokens, Token{Literal: lit.String()})
			lit.Reset()
		}

		d, n, err := parseDirective(format, i, ordinal)
		if err != nil {
			return nil, err
		}
		i += n
		ordinal++

		if d.Arg == 0 && d.Conv != ConvPercent && d.Conv != ConvNewline {
			d.Arg = next
			next++
		} else if d.Arg > 0 {
			d.Arg--
		}
		if d.Arg >= 0 && d.Arg+1 > spec.Args {
			spec.Args = d.Arg + 1
		}
		spec.Tokens = append(spec.Tokens, Token{Directive: d})
	}
	if lit.Len() > 0 {
		spec.Tokens = append(spec.Tokens, Token{Literal: lit.String()})
	}
	return spec, nil
}

// parseDirective parses the directive starting at format[start] == '%'.
// On return d.Arg holds the explicit 1-based index, 0 when the directive
// takes the next argument, or -1 when it takes none.
func parseDirective(format string, start, ordinal int) (*Directive, int, error) {
	d := &Directive{Width: -1, Precision: -1, Ordinal: ordinal}
	i := start + 1

	syntax := func(detail string, args ...any) error {
		return errors.New(errors.PhaseFormat, errors.KindFormatSyntax).
			Value(format[start:min(i+1, len(format))]).
			Detail("directive %d at offset %d: "+detail, append([]any{ordinal, start}, args...)...).
			Build()
	}

	// explicit argument index: digits followed by '$'
	if j, n, ok := scanInt(format, i); ok && j < len(format) && format[j] == '$' {
		if n <= 0 {
			return nil, 0, syntax("argument index must be positive")
		}
		d.Arg = n
		i = j + 1
	}

	for i < len(format) {
		f, ok := flagFor(format[i])
		if !ok {
			break
		}
		if d.Flags.Has(f) {
			return nil, 0, syntax("duplicate flag %q", format[i])
		}
		d.Flags |= f
		i++
	}

	if j, n, ok := scanInt(format, i); ok {
		if n < 0 {
			return nil, 0, syntax("width out of range")
		}
		d.Width = n
		i = j
	}

	if i < len(format) && format[i] == '.' {
		j, n, ok := scanInt(format, i+1)
		if !ok {
			return nil, 0, syntax("missing precision")
		}
		if n < 0 {
			return nil, 0, syntax("precision out of range")
		}
		d.Precision = n
		i = j
	}

	if i >= len(format) {
		return nil, 0, syntax("missing conversion")
	}
	d.Conv = format[i]
	i++

	rule, ok := allowed[d.Conv]
	if !ok {
		i--
		return nil, 0, syntax("unknown conversion %q", d.Conv)
	}
	if d.Conv == ConvPercent || d.Conv == ConvNewline {
		d.Arg = -1
	}
	if err := checkFlags(d, rule.flags, rule.precision); err != nil {
		return nil, 0, err
	}
	return d, i - start, nil
}

func checkFlags(d *Directive, accepts Flags, precision bool) error {
	conflict := func(detail string, args ...any) error {
		return errors.New(errors.PhaseFormat, errors.KindFormatFlagConflict).
			Value(d.String()).
			Detail("directive %d (%s): "+detail, append([]any{d.Ordinal, d.String()}, args...)...).
			Build()
	}

	if d.Flags.Has(FlagLeft | FlagZero) {
		return conflict("'-' and '0' cannot be combined")
	}
	if extra := d.Flags &^ accepts; extra != 0 {
		return conflict("flags %q not allowed for %%%c", extra.String(), d.Conv)
	}
	if d.Width < 0 && (d.Flags.Has(FlagLeft) || d.Flags.Has(FlagZero)) {
		return conflict("flag %q requires a width", d.Flags.String())
	}
	if d.Precision >= 0 && !precision {
		return conflict("precision not allowed for %%%c", d.Conv)
	}
	if d.Conv == ConvNewline && d.Width >= 0 {
		return conflict("width not allowed for %%n")
	}
	return nil
}

// scanInt reads a run of decimal digits at format[i:]. It returns the index
// after the run, the value (-1 on overflow) and whether any digit was read.
func scanInt(format string, i int) (int, int, bool) {
	j := i
	for j < len(format) && format[j] >= '0' && format[j] <= '9' {
		j++
	}
	if j == i {
		return i, 0, false
	}
	n, err := strconv.ParseInt(format[i:j], 10, 32)
	if err != nil {
		return j, -1, true
	}
	return j, int(n), true
}
