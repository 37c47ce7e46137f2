package textstream

import (
	"fmt"
	"testing"

	"github.com/wippyai/hostbridge/errors"
)

func TestWriter(t *testing.T) {
	w := NewWriter()

	if err := w.WriteChars([]uint16{'x', 'H', 'i', 'y'}, 1, 2); err != nil {
		t.Fatal(err)
	}
	w.WriteChar(32)
	w.WriteString("there")
	if err := w.WriteStringRange("--, --", 2, 2); err != nil {
		t.Fatal(err)
	}
	w.AppendChar('W').Append("orld").AppendChar('!')

	if got := w.String(); got != "Hi there, World!" {
		t.Fatalf("String = %q", got)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := w.String(); got != "Hi there, World!" {
		t.Fatalf("String after Flush = %q", got)
	}
}

func TestWriter_WriteCharLowBits(t *testing.T) {
	w := NewWriter()
	w.WriteChar(0x10041)
	if got := w.String(); got != "A" {
		t.Fatalf("String = %q", got)
	}
}

func TestWriter_Bounds(t *testing.T) {
	w := NewWriter()
	if err := w.WriteChars([]uint16{'a'}, 0, 2); !errors.Is(err, errors.ErrIndexOutOfRange) {
		t.Fatalf("WriteChars error = %v", err)
	}
	if err := w.WriteStringRange("abc", 2, 5); !errors.Is(err, errors.ErrIndexOutOfRange) {
		t.Fatalf("WriteStringRange error = %v", err)
	}
	if _, err := w.AppendRange("abc", 2, 1); !errors.Is(err, errors.ErrIndexOutOfRange) {
		t.Fatalf("AppendRange error = %v", err)
	}
	if _, err := NewWriterSize(-1); !errors.Is(err, errors.ErrInvalidInput) {
		t.Fatalf("NewWriterSize(-1) error = %v", err)
	}
	if w.String() != "" {
		t.Fatalf("failed writes left content %q", w.String())
	}
}

func TestWriter_IOInterfaces(t *testing.T) {
	w := NewWriter()
	fmt.Fprintf(w, "%d-%s", 7, "ok")
	w.Close()
	w.WriteString(".")
	if got := w.String(); got != "7-ok." {
		t.Fatalf("String = %q", got)
	}
	if w.Buffer().Length() != 5 {
		t.Fatalf("Buffer length = %d", w.Buffer().Length())
	}
}
