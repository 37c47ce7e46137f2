package textbuf

import (
	"testing"

	"github.com/wippyai/hostbridge/errors"
)

func TestNewString_RoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "Hello, World", "日本語", "a😀b"} {
		if got := NewString(s).String(); got != s {
			t.Errorf("NewString(%q).String() = %q", s, got)
		}
	}
}

func TestCapacity(t *testing.T) {
	if c := New().Capacity(); c != 16 {
		t.Fatalf("New capacity = %d, want 16", c)
	}
	if c := NewString("Hello").Capacity(); c != 21 {
		t.Fatalf("NewString capacity = %d, want 21", c)
	}

	b, err := NewCapacity(4)
	if err != nil {
		t.Fatal(err)
	}
	b.AppendString("abcde")
	if c := b.Capacity(); c != 10 {
		t.Fatalf("capacity after growth = %d, want 10", c)
	}
	b.AppendString("0123456789012345678901234")
	if c := b.Capacity(); c != 30 {
		t.Fatalf("capacity after large growth = %d, want 30", c)
	}

	b.TrimToSize()
	if b.Capacity() != b.Length() {
		t.Fatalf("TrimToSize: capacity %d, length %d", b.Capacity(), b.Length())
	}
	b.EnsureCapacity(b.Length() + 1)
	if c := b.Capacity(); c != 2*30+2 {
		t.Fatalf("EnsureCapacity = %d, want %d", c, 62)
	}

	if _, err := NewCapacity(-1); !errors.Is(err, errors.ErrInvalidInput) {
		t.Fatalf("NewCapacity(-1) error = %v", err)
	}
}

func TestAppend(t *testing.T) {
	b := New()
	b.AppendString("x=").AppendInt(-42).AppendChar(' ').AppendBool(true).
		AppendChar(' ').AppendLong(1 << 40).AppendChar(' ').AppendDouble(2.5).
		AppendChar(' ').AppendFloat(1.1)
	want := "x=-42 true 1099511627776 2.5 1.1"
	if got := b.String(); got != want {
		t.Fatalf("String = %q, want %q", got, want)
	}

	before := b.Length()
	b.AppendString("日本")
	if b.Length() != before+2 {
		t.Fatalf("Length after append = %d, want %d", b.Length(), before+2)
	}

	if _, err := b.AppendCodePoint(0x1F600); err != nil {
		t.Fatal(err)
	}
	if b.Length() != before+4 {
		t.Fatalf("supplementary code point should add 2 units")
	}
	if _, err := b.AppendCodePoint(-1); !errors.Is(err, errors.ErrInvalidInput) {
		t.Fatalf("AppendCodePoint(-1) error = %v", err)
	}
}

func TestAppendChars(t *testing.T) {
	b := New()
	src := []uint16{'a', 'b', 'c', 'd'}
	if _, err := b.AppendChars(src, 1, 2); err != nil {
		t.Fatal(err)
	}
	if b.String() != "bc" {
		t.Fatalf("String = %q", b.String())
	}
	if _, err := b.AppendChars(src, 3, 2); !errors.Is(err, errors.ErrIndexOutOfRange) {
		t.Fatalf("AppendChars out of range error = %v", err)
	}
}

func TestAppendText(t *testing.T) {
	b := NewString("ab")
	b.AppendText(b)
	if b.String() != "abab" {
		t.Fatalf("self append = %q", b.String())
	}
	b.AppendText(NewBufferString("!"))
	if b.String() != "abab!" {
		t.Fatalf("append buffer = %q", b.String())
	}
}

func TestInsertString(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		offset  int
		insert  string
		want    string
		wantErr bool
	}{
		{"start", "world", 0, "hello ", "hello world", false},
		{"middle", "held", 2, "llo wor", "hello world", false},
		{"end", "hello", 5, "!", "hello!", false},
		{"empty", "", 0, "x", "x", false},
		{"negative", "abc", -1, "x", "abc", true},
		{"past end", "abc", 4, "x", "abc", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewString(tt.initial)
			_, err := b.InsertString(tt.offset, tt.insert)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrIndexOutOfRange) {
					t.Fatalf("error = %v, want out of range", err)
				}
			} else if err != nil {
				t.Fatal(err)
			}
			if got := b.String(); got != tt.want {
				t.Fatalf("String = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInsertVariants(t *testing.T) {
	b := NewString("[]")
	b.InsertInt(1, 7)
	b.InsertChar(1, ':')
	b.InsertBool(1, false)
	b.InsertLong(0, -1)
	b.InsertDouble(b.Length(), 0.5)
	b.InsertChars(0, []uint16{'x', 'y', 'z'}, 1, 1)
	if got, want := b.String(), "y-1[false:7]0.5"; got != want {
		t.Fatalf("String = %q, want %q", got, want)
	}
}

func TestIndexOf(t *testing.T) {
	b := NewString("abcabc")
	tests := []struct {
		needle string
		want   int
	}{
		{"", 0},
		{"a", 0},
		{"bc", 1},
		{"cab", 2},
		{"abcabcd", NotFound},
		{"z", NotFound},
	}
	for _, tt := range tests {
		if got := b.IndexOf(tt.needle); got != tt.want {
			t.Errorf("IndexOf(%q) = %d, want %d", tt.needle, got, tt.want)
		}
	}
	if got := b.IndexOfFrom("a", 1); got != 3 {
		t.Errorf("IndexOfFrom = %d", got)
	}
	if got := b.LastIndexOf("a"); got != 3 {
		t.Errorf("LastIndexOf = %d", got)
	}
	if got := b.LastIndexOfFrom("a", 2); got != 0 {
		t.Errorf("LastIndexOfFrom = %d", got)
	}
	if got := New().IndexOf(""); got != 0 {
		t.Errorf("IndexOf empty on empty = %d", got)
	}
}

func TestReverse(t *testing.T) {
	for _, s := range []string{"", "a", "ab", "Hello", "a😀b", "😀"} {
		b := NewString(s)
		b.Reverse().Reverse()
		if got := b.String(); got != s {
			t.Errorf("Reverse twice (%q) = %q", s, got)
		}
	}
	if got := NewString("a😀b").Reverse().String(); got != "b😀a" {
		t.Errorf("Reverse = %q", got)
	}
}

func TestDeleteReplaceSubstring(t *testing.T) {
	b := NewString("Hello, World")
	if _, err := b.Delete(5, 100); err != nil {
		t.Fatal(err)
	}
	if b.String() != "Hello" {
		t.Fatalf("Delete = %q", b.String())
	}
	if _, err := b.Delete(3, 2); !errors.Is(err, errors.ErrIndexOutOfRange) {
		t.Fatalf("Delete reversed range error = %v", err)
	}
	if _, err := b.DeleteCharAt(0); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Replace(0, 2, "EE"); err != nil {
		t.Fatal(err)
	}
	if b.String() != "EElo" {
		t.Fatalf("Replace = %q", b.String())
	}
	if _, err := b.Replace(4, 10, "!"); err != nil {
		t.Fatal(err)
	}
	if b.String() != "EElo!" {
		t.Fatalf("Replace at end = %q", b.String())
	}
	if _, err := b.Replace(6, 7, "x"); !errors.Is(err, errors.ErrIndexOutOfRange) {
		t.Fatalf("Replace past end error = %v", err)
	}

	s, err := b.SubstringRange(1, 3)
	if err != nil || s != "El" {
		t.Fatalf("SubstringRange = %q, %v", s, err)
	}
	s, err = b.Substring(2)
	if err != nil || s != "lo!" {
		t.Fatalf("Substring = %q, %v", s, err)
	}
	if _, err := b.SubstringRange(2, 9); !errors.Is(err, errors.ErrIndexOutOfRange) {
		t.Fatalf("SubstringRange error = %v", err)
	}
}

func TestCharAccess(t *testing.T) {
	b := NewString("a😀")
	c, err := b.CharAt(0)
	if err != nil || c != 'a' {
		t.Fatalf("CharAt = %q, %v", c, err)
	}
	if _, err := b.CharAt(3); !errors.Is(err, errors.ErrIndexOutOfRange) {
		t.Fatalf("CharAt(3) error = %v", err)
	}
	if err := b.SetCharAt(0, 'b'); err != nil {
		t.Fatal(err)
	}
	if r, _ := b.CodePointAt(1); r != '😀' {
		t.Fatalf("CodePointAt = %U", r)
	}
	if r, _ := b.CodePointBefore(3); r != '😀' {
		t.Fatalf("CodePointBefore = %U", r)
	}
	if n, _ := b.CodePointCount(0, 3); n != 2 {
		t.Fatalf("CodePointCount = %d", n)
	}
	if _, err := b.CodePointBefore(0); !errors.Is(err, errors.ErrIndexOutOfRange) {
		t.Fatalf("CodePointBefore(0) error = %v", err)
	}
}

func TestSetLength(t *testing.T) {
	b := NewString("abc")
	if err := b.SetLength(5); err != nil {
		t.Fatal(err)
	}
	if got := b.Units(); len(got) != 5 || got[3] != 0 || got[4] != 0 {
		t.Fatalf("padded units = %v", got)
	}
	if err := b.SetLength(1); err != nil {
		t.Fatal(err)
	}
	if b.String() != "a" {
		t.Fatalf("truncated = %q", b.String())
	}
	if err := b.SetLength(-1); !errors.Is(err, errors.ErrIndexOutOfRange) {
		t.Fatalf("SetLength(-1) error = %v", err)
	}
}

func TestWriter(t *testing.T) {
	b := New()
	b.Write([]byte("héllo "))
	b.WriteString("wörld")
	if b.String() != "héllo wörld" || b.Length() != 11 {
		t.Fatalf("String = %q length %d", b.String(), b.Length())
	}
	b.Reset()
	if b.Length() != 0 {
		t.Fatal("Reset did not empty the builder")
	}
}
