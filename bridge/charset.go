package bridge

import (
	"github.com/wippyai/hostbridge/textcodec"
)

// GetBytes encodes s in charset. An unknown charset raises
// UnsupportedEncoding.
func (e *Env) GetBytes(s, charset string) []byte {
	if e.pending != nil {
		return nil
	}
	b, err := textcodec.GetBytes(s, charset)
	if err != nil {
		e.ThrowError(err)
		return nil
	}
	return b
}

// NewStringFromBytes decodes b from charset. Malformed input decodes to
// U+FFFD.
func (e *Env) NewStringFromBytes(b []byte, charset string) string {
	if e.pending != nil {
		return ""
	}
	s, err := textcodec.NewString(b, charset)
	if err != nil {
		e.ThrowError(err)
		return ""
	}
	return s
}

// DecodeStrict decodes b from charset and raises MalformedText on invalid
// UTF-8.
func (e *Env) DecodeStrict(b []byte, charset string) string {
	if e.pending != nil {
		return ""
	}
	s, err := textcodec.DecodeStrict(b, charset)
	if err != nil {
		e.ThrowError(err)
		return ""
	}
	return s
}

// GetStringUTF returns s in modified UTF-8.
func (e *Env) GetStringUTF(s string) []byte {
	if e.pending != nil {
		return nil
	}
	return textcodec.EncodeModifiedUTF8(s)
}

// NewStringUTF decodes modified UTF-8 and raises MalformedText on bad
// input.
func (e *Env) NewStringUTF(b []byte) string {
	if e.pending != nil {
		return ""
	}
	s, err := textcodec.DecodeModifiedUTF8(b)
	if err != nil {
		e.ThrowError(err)
		return ""
	}
	return s
}
