package format

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/internal/jtext"
)

// ArgKind is the host type of a format argument.
type ArgKind uint8

const (
	KindNull ArgKind = iota
	KindInt
	KindLong
	KindShort
	KindByte
	KindFloat
	KindDouble
	KindBool
	KindChar
	KindString
	KindBigInteger
	KindBigDecimal
	KindObject
)

var kindNames = [...]string{
	KindNull:       "null",
	KindInt:        "Integer",
	KindLong:       "Long",
	KindShort:      "Short",
	KindByte:       "Byte",
	KindFloat:      "Float",
	KindDouble:     "Double",
	KindBool:       "Boolean",
	KindChar:       "Character",
	KindString:     "String",
	KindBigInteger: "BigInteger",
	KindBigDecimal: "BigDecimal",
	KindObject:     "Object",
}

func (k ArgKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "ArgKind(" + strconv.Itoa(int(k)) + ")"
}

// Arg is one typed format argument. Integral kinds keep their value in i,
// floating kinds in f, and the text kinds (String, BigInteger, BigDecimal,
// Object) in s. Arbitrary-precision values are carried as their exact
// decimal text and are never converted to a fixed-width number.
type Arg struct {
	s    string
	i    int64
	f    float64
	kind ArgKind
}

func Int(v int32) Arg      { return Arg{kind: KindInt, i: int64(v)} }
func Long(v int64) Arg     { return Arg{kind: KindLong, i: v} }
func Short(v int16) Arg    { return Arg{kind: KindShort, i: int64(v)} }
func Byte(v int8) Arg      { return Arg{kind: KindByte, i: int64(v)} }
func Char(v uint16) Arg    { return Arg{kind: KindChar, i: int64(v)} }
func Float(v float32) Arg  { return Arg{kind: KindFloat, f: float64(v)} }
func Double(v float64) Arg { return Arg{kind: KindDouble, f: v} }
func String(v string) Arg  { return Arg{kind: KindString, s: v} }
func Null() Arg            { return Arg{kind: KindNull} }

func Bool(v bool) Arg {
	a := Arg{kind: KindBool}
	if v {
		a.i = 1
	}
	return a
}

// BigInteger wraps the decimal text of an arbitrary-precision integer.
func BigInteger(text string) Arg { return Arg{kind: KindBigInteger, s: text} }

// BigDecimal wraps the plain decimal text of an arbitrary-precision decimal.
func BigDecimal(text string) Arg { return Arg{kind: KindBigDecimal, s: text} }

// Object wraps any value with a string form. A nil Stringer is Null.
func Object(v fmt.Stringer) Arg {
	if v == nil {
		return Null()
	}
	return Arg{kind: KindObject, s: v.String()}
}

// Of maps a Go value to the closest host argument type.
func Of(v any) Arg {
	switch v := v.(type) {
	case nil:
		return Null()
	case Arg:
		return v
	case int32:
		return Int(v)
	case int64:
		return Long(v)
	case int:
		return Long(int64(v))
	case int16:
		return Short(v)
	case int8:
		return Byte(v)
	case uint8:
		return Short(int16(v))
	case uint16:
		return Char(v)
	case uint32:
		return Long(int64(v))
	case uint:
		return ofUnsigned(uint64(v))
	case uint64:
		return ofUnsigned(v)
	case float32:
		return Float(v)
	case float64:
		return Double(v)
	case bool:
		return Bool(v)
	case string:
		return String(v)
	case *big.Int:
		if v == nil {
			return Null()
		}
		return BigInteger(v.String())
	case *big.Float:
		if v == nil {
			return Null()
		}
		return BigDecimal(v.Text('f', -1))
	case *big.Rat:
		if v == nil {
			return Null()
		}
		return BigDecimal(v.FloatString(decimalDigits(v)))
	case fmt.Stringer:
		return Object(v)
	case error:
		return Arg{kind: KindObject, s: v.Error()}
	default:
		return Arg{kind: KindObject, s: fmt.Sprint(v)}
	}
}

func ofUnsigned(v uint64) Arg {
	if v > math.MaxInt64 {
		return BigInteger(strconv.FormatUint(v, 10))
	}
	return Long(int64(v))
}

// decimalDigits returns the number of fractional digits needed to print r
// exactly, or 20 when its expansion does not terminate.
func decimalDigits(r *big.Rat) int {
	d := new(big.Int).Set(r.Denom())
	two, five := big.NewInt(2), big.NewInt(5)
	var twos, fives int
	var m big.Int
	for d.Cmp(big.NewInt(1)) > 0 {
		switch {
		case m.Mod(d, two).Sign() == 0:
			d.Quo(d, two)
			twos++
		case m.Mod(d, five).Sign() == 0:
			d.Quo(d, five)
			fives++
		default:
			return 20
		}
	}
	return max(twos, fives)
}

// Kind returns the host type of a.
func (a Arg) Kind() ArgKind { return a.kind }

// IsNull reports whether a is the null argument.
func (a Arg) IsNull() bool { return a.kind == KindNull }

func (a Arg) integral() bool {
	switch a.kind {
	case KindInt, KindLong, KindShort, KindByte:
		return true
	}
	return false
}

func (a Arg) floating() bool {
	return a.kind == KindFloat || a.kind == KindDouble
}

// Text returns the host's default string conversion of a.
func (a Arg) Text() string {
	switch a.kind {
	case KindNull:
		return "null"
	case KindInt, KindLong, KindShort, KindByte:
		return strconv.FormatInt(a.i, 10)
	case KindFloat:
		return jtext.FormatFloat(float32(a.f))
	case KindDouble:
		return jtext.FormatDouble(a.f)
	case KindBool:
		return strconv.FormatBool(a.i != 0)
	case KindChar:
		return jtext.Decode([]uint16{uint16(a.i)})
	default:
		return a.s
	}
}

func (a Arg) String() string {
	if a.kind == KindNull {
		return "null"
	}
	return a.kind.String() + "(" + a.Text() + ")"
}

// ArgList is an ordered, editable argument sequence.
type ArgList struct {
	args []Arg
}

// NewArgList returns a list holding args.
func NewArgList(args ...Arg) *ArgList {
	return &ArgList{args: append([]Arg(nil), args...)}
}

func (l *ArgList) check(op string, i, n int) error {
	if i < 0 || i >= n {
		return errors.OutOfBounds(errors.PhaseFormat, []string{"args", op}, i, n)
	}
	return nil
}

// Append adds a to the end.
func (l *ArgList) Append(a Arg) *ArgList {
	l.args = append(l.args, a)
	return l
}

// Insert places a at position i, shifting later arguments right.
// i may equal Len.
func (l *ArgList) Insert(i int, a Arg) error {
	if err := l.check("insert", i, len(l.args)+1); err != nil {
		return err
	}
	l.args = append(l.args, Arg{})
	copy(l.args[i+1:], l.args[i:])
	l.args[i] = a
	return nil
}

// Replace overwrites the argument at i.
func (l *ArgList) Replace(i int, a Arg) error {
	if err := l.check("replace", i, len(l.args)); err != nil {
		return err
	}
	l.args[i] = a
	return nil
}

// Delete removes the argument at i.
func (l *ArgList) Delete(i int) error {
	if err := l.check("delete", i, len(l.args)); err != nil {
		return err
	}
	l.args = append(l.args[:i], l.args[i+1:]...)
	return nil
}

// Get returns the argument at i.
func (l *ArgList) Get(i int) (Arg, error) {
	if err := l.check("get", i, len(l.args)); err != nil {
		return Arg{}, err
	}
	return l.args[i], nil
}

func (l *ArgList) Len() int { return len(l.args) }

// Args returns the arguments. The slice is shared with the list.
func (l *ArgList) Args() []Arg { return l.args }

// Clear removes every argument.
func (l *ArgList) Clear() { l.args = l.args[:0] }
