// Package textcodec converts between host strings and byte encodings named
// by charset, and implements the modified UTF-8 form used for strings that
// cross the native boundary.
package textcodec

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/wippyai/hostbridge/errors"
)

// Replacement is written in place of characters a charset cannot encode.
const Replacement = '?'

var common = map[string]encoding.Encoding{
	"utf-8":      unicode.UTF8,
	"utf8":       unicode.UTF8,
	"utf-16":     unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	"utf-16be":   unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf-16le":   unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"iso-8859-1": charmap.ISO8859_1,
	"latin1":     charmap.ISO8859_1,
	"cp1252":     charmap.Windows1252,
}

// Lookup resolves a charset name. Common host names are matched first,
// then IANA names and aliases. Unknown or unsupported names fail with an
// unsupported_encoding error.
func Lookup(charset string) (encoding.Encoding, error) {
	if enc, ok := common[strings.ToLower(charset)]; ok {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return nil, errors.New(errors.PhaseCodec, errors.KindUnsupportedEncoding).
			Value(charset).
			Cause(err).
			Detail("unsupported charset %q", charset).
			Build()
	}
	return enc, nil
}

// Supported reports whether Lookup would succeed for charset.
func Supported(charset string) bool {
	_, err := Lookup(charset)
	return err == nil
}

// GetBytes encodes s in charset. Characters the charset cannot represent
// become Replacement.
func GetBytes(s, charset string) ([]byte, error) {
	enc, err := Lookup(charset)
	if err != nil {
		return nil, err
	}
	if out, err := enc.NewEncoder().Bytes([]byte(s)); err == nil {
		return out, nil
	}

	out := make([]byte, 0, len(s))
	e := enc.NewEncoder()
	for _, r := range s {
		b, err := e.Bytes(utf8.AppendRune(nil, r))
		if err != nil {
			out = append(out, Replacement)
			continue
		}
		out = append(out, b...)
	}
	return out, nil
}

// NewString decodes b from charset. Malformed input decodes to U+FFFD.
func NewString(b []byte, charset string) (string, error) {
	enc, err := Lookup(charset)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", errors.Wrap(errors.PhaseCodec, errors.KindInvalidUTF8, err, "decode "+charset)
	}
	return string(out), nil
}

// DecodeStrict decodes b from charset and fails with an invalid_utf8 error
// when charset is UTF-8 and b is not well formed. Other charsets decode as
// NewString does.
func DecodeStrict(b []byte, charset string) (string, error) {
	enc, err := Lookup(charset)
	if err != nil {
		return "", err
	}
	if !isUTF8(charset, enc) {
		return NewString(b, charset)
	}
	if _, _, err := transform.Bytes(encoding.UTF8Validator, b); err != nil {
		return "", errors.InvalidUTF8(errors.PhaseCodec, []string{charset}, b)
	}
	return string(b), nil
}

func isUTF8(charset string, enc encoding.Encoding) bool {
	switch strings.ToLower(charset) {
	case "utf-8", "utf8":
		return true
	}
	name, err := ianaindex.IANA.Name(enc)
	return err == nil && strings.EqualFold(name, "UTF-8")
}
