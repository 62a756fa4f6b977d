package clip

import (
	"errors"
	"testing"
)

type failing struct{}

func (failing) WriteAll(string) error { return errors.New("no display") }

func TestCopy(t *testing.T) {
	m := &Memory{}
	ok, err := Copy(m, "zyx 힣")
	if err != nil || !ok {
		t.Fatalf("unexpected: %v, %v", ok, err)
	}
	if m.Text != "zyx 힣" {
		t.Fatalf("text not copied verbatim: %q", m.Text)
	}
	ok, err = Copy(m, "")
	if err != nil || ok {
		t.Fatalf("empty text should be skipped: %v, %v", ok, err)
	}
	if m.Text != "zyx 힣" {
		t.Fatal("clipboard overwritten by empty text")
	}
	if _, err := Copy(failing{}, "x"); err == nil {
		t.Fatal("expected error")
	}
}
