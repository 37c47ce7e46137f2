package textbuf

import "io"

// DefaultCapacity is the capacity of a buffer created without a size hint.
const DefaultCapacity = 16

// NotFound is returned by the search operations when there is no match.
const NotFound = -1

// Text is the surface shared by Builder and Buffer. Writers and the format
// engine append through it without caring which variant they hold.
type Text interface {
	io.Writer
	io.StringWriter
	// Length returns the number of UTF-16 code units.
	Length() int
	// String returns a snapshot of the content.
	String() string
	// Units returns a copy of the content as UTF-16 code units.
	Units() []uint16
}

var (
	_ Text = (*Builder)(nil)
	_ Text = (*Buffer)(nil)
)
