package format

import (
	"io"

	"github.com/wippyai/hostbridge/internal/jtext"
	"github.com/wippyai/hostbridge/textbuf"
)

// Args converts Go values to format arguments with Of.
func Args(values ...any) []Arg {
	args := make([]Arg, len(values))
	for i, v := range values {
		args[i] = Of(v)
	}
	return args
}

// Sprintf parses format and renders values, each converted with Of.
// Arg values pass through unchanged.
func Sprintf(format string, values ...any) (string, error) {
	spec, err := Parse(format)
	if err != nil {
		return "", err
	}
	return spec.Render(Args(values...))
}

// Fprintf renders to w and returns the number of bytes written.
func Fprintf(w io.Writer, format string, values ...any) (int, error) {
	s, err := Sprintf(format, values...)
	if err != nil {
		return 0, err
	}
	return io.WriteString(w, s)
}

// Snprintf renders at most size-1 UTF-16 units of output, leaving room for
// a terminator the way a fixed-size native buffer would. It returns the
// possibly truncated text and the untruncated length in units.
func Snprintf(size int, format string, values ...any) (string, int, error) {
	s, err := Sprintf(format, values...)
	if err != nil {
		return "", 0, err
	}
	units := jtext.Encode(s)
	n := len(units)
	if size <= 0 {
		return "", n, nil
	}
	if n > size-1 {
		return jtext.Decode(units[:size-1]), n, nil
	}
	return s, n, nil
}

// AppendTo renders into t.
func AppendTo(t textbuf.Text, format string, values ...any) error {
	s, err := Sprintf(format, values...)
	if err != nil {
		return err
	}
	_, err = t.WriteString(s)
	return err
}

// RenderList renders a parsed spec against an ArgList.
func (s *Spec) RenderList(l *ArgList) (string, error) {
	if l == nil {
		return s.Render(nil)
	}
	return s.Render(l.Args())
}
