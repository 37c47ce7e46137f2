package bridge

import (
	"slices"

	"github.com/wippyai/hostbridge/errors"
)

// Kind is the fixed set of exception kinds the bridge raises.
type Kind uint8

const (
	KindIO Kind = iota + 1
	KindMalformedText
	KindResourceNotFound
	KindUnsupportedEncoding
	KindGeneric
)

var kindNames = map[Kind]struct{ name, hostType string }{
	KindIO:                  {"IO", "java/io/IOException"},
	KindMalformedText:       {"MalformedText", "java/io/UTFDataFormatException"},
	KindResourceNotFound:    {"ResourceNotFound", "java/io/FileNotFoundException"},
	KindUnsupportedEncoding: {"UnsupportedEncoding", "java/io/UnsupportedEncodingException"},
	KindGeneric:             {"Generic", "java/lang/RuntimeException"},
}

// Kinds lists every exception kind.
var Kinds = []Kind{KindIO, KindMalformedText, KindResourceNotFound, KindUnsupportedEncoding, KindGeneric}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n.name
	}
	return "Unknown"
}

// HostType returns the host exception class the kind is raised as.
func (k Kind) HostType() string {
	if n, ok := kindNames[k]; ok {
		return n.hostType
	}
	return kindNames[KindGeneric].hostType
}

// Checked reports whether callers must declare the kind. Generic maps to
// an unchecked host exception and may always be raised.
func (k Kind) Checked() bool { return k != KindGeneric }

// Exception is a raised bridge exception. It implements error.
type Exception struct {
	Message string
	Kind    Kind
}

func (e *Exception) Error() string {
	if e.Message == "" {
		return e.Kind.HostType()
	}
	return e.Kind.HostType() + ": " + e.Message
}

// Signature describes a bridge entry point: its name and the checked
// exception kinds it declares.
type Signature struct {
	Name   string
	Throws []Kind
}

// Declares reports whether k may be raised through the signature.
func (s Signature) Declares(k Kind) bool {
	return !k.Checked() || slices.Contains(s.Throws, k)
}

// KindForError maps an error to the exception kind it is raised as.
func KindForError(err error) Kind {
	var ex *Exception
	if errors.As(err, &ex) {
		return ex.Kind
	}
	switch errors.KindOf(err) {
	case errors.KindInvalidUTF8:
		return KindMalformedText
	case errors.KindUnsupportedEncoding:
		return KindUnsupportedEncoding
	case errors.KindNotFound:
		return KindResourceNotFound
	case errors.KindStreamClosed, errors.KindMarkNotSet, errors.KindInvalidatedMark:
		return KindIO
	}
	return KindGeneric
}
