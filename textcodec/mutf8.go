package textcodec

import (
	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/internal/jtext"
)

// EncodeModifiedUTF8 encodes s the way the host hands strings to native
// code: NUL becomes the two bytes C0 80 and supplementary characters are
// written as two three-byte surrogates.
func EncodeModifiedUTF8(s string) []byte {
	units := jtext.Encode(s)
	out := make([]byte, 0, len(units))
	for _, u := range units {
		switch {
		case u != 0 && u < 0x80:
			out = append(out, byte(u))
		case u < 0x800:
			out = append(out, 0xC0|byte(u>>6), 0x80|byte(u&0x3F))
		default:
			out = append(out, 0xE0|byte(u>>12), 0x80|byte(u>>6&0x3F), 0x80|byte(u&0x3F))
		}
	}
	return out
}

// DecodeModifiedUTF8 reverses EncodeModifiedUTF8. Truncated sequences,
// bad continuation bytes and four-byte forms fail with an invalid_utf8
// error naming the offending offset.
func DecodeModifiedUTF8(b []byte) (string, error) {
	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c < 0x80:
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(b) || b[i+1]&0xC0 != 0x80 {
				return "", malformed(b, i)
			}
			units = append(units, uint16(c&0x1F)<<6|uint16(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0:
			if i+2 >= len(b) || b[i+1]&0xC0 != 0x80 || b[i+2]&0xC0 != 0x80 {
				return "", malformed(b, i)
			}
			units = append(units, uint16(c&0x0F)<<12|uint16(b[i+1]&0x3F)<<6|uint16(b[i+2]&0x3F))
			i += 3
		default:
			return "", malformed(b, i)
		}
	}
	return jtext.Decode(units), nil
}

func malformed(b []byte, at int) error {
	return errors.New(errors.PhaseCodec, errors.KindInvalidUTF8).
		Value(at).
		Detail("malformed input around byte %d", at).
		Build()
}
