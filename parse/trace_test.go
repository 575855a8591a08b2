package parse

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestTracedIsTransparent(t *testing.T) {
	p := Traced("number", NonNegDecimal[int]())

	r := strings.NewReader("42x")
	got, err := p.Parse(r)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got != 42 {
		t.Errorf("Parse() = %d, want 42", got)
	}
	if pos := streamPos(t, r); pos != 2 {
		t.Errorf("position = %d, want 2", pos)
	}

	r = strings.NewReader("x")
	if _, err := p.Parse(r); err == nil {
		t.Fatal("Parse() succeeded, want failure")
	}
	if pos := streamPos(t, r); pos != 0 {
		t.Errorf("position after failure = %d, want 0", pos)
	}
}

// unseekable reads nothing and refuses to report its position.
type unseekable struct{}

func (unseekable) Read([]byte) (int, error) { return 0, io.EOF }

func (unseekable) Seek(int64, int) (int64, error) {
	return 0, errors.New("seek unsupported")
}

func TestTracedDelegatesWhenPositionUnavailable(t *testing.T) {
	inner := Parser[int](func(io.ReadSeeker) (int, error) { return 42, nil })
	got, err := Traced("const", inner).Parse(unseekable{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got != 42 {
		t.Errorf("Parse() = %d, want 42", got)
	}
}
