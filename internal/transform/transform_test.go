package transform

import (
	"bytes"
	"testing"

	"github.com/dyne/atbash/internal/config"
)

func TestCiphersRoundTrip(t *testing.T) {
	row := RowContext{Table: "notes", Column: "body", PK: []any{1}}
	cases := []Transformer{NewAtbash(), NewRot13(), NewIdentity()}
	for _, tr := range cases {
		if !Involutive(tr) {
			t.Fatalf("%s should be involutive", tr.Name())
		}
		once, err := tr.Transform("Hello, 세계 42", row)
		if err != nil {
			t.Fatalf("%s: %v", tr.Name(), err)
		}
		twice, err := tr.Transform(once, row)
		if err != nil {
			t.Fatalf("%s: %v", tr.Name(), err)
		}
		if twice != "Hello, 세계 42" {
			t.Fatalf("%s not restored: %v", tr.Name(), twice)
		}
	}
}

func TestAtbashValues(t *testing.T) {
	tr := NewAtbash()
	row := RowContext{}
	out, err := tr.Transform("abc", row)
	if err != nil || out != "zyx" {
		t.Fatalf("unexpected output: %v, %v", out, err)
	}
	out, err = tr.Transform(nil, row)
	if err != nil || out != nil {
		t.Fatalf("nil should pass through: %v, %v", out, err)
	}
	out, err = tr.Transform(int64(7), row)
	if err != nil || out != int64(7) {
		t.Fatalf("integers should pass through: %v, %v", out, err)
	}
	out, err = tr.Transform([]byte("가"), row)
	if err != nil || !bytes.Equal(out.([]byte), []byte("힣")) {
		t.Fatalf("blob not ciphered: %v, %v", out, err)
	}
}

func TestAtbashBlobKeepsInvalidBytes(t *testing.T) {
	in := []byte("ab\xff\xfe가")
	out, err := NewAtbash().Transform(in, RowContext{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.([]byte), []byte("zy\xff\xfe힣")) {
		t.Fatalf("unexpected blob: %q", out)
	}
	if !bytes.Equal(in, []byte("ab\xff\xfe가")) {
		t.Fatalf("input modified: %q", in)
	}
}

func TestRot13(t *testing.T) {
	out, _ := NewRot13().Transform("Hello 가", RowContext{})
	if out != "Uryyb 가" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestMapReplace(t *testing.T) {
	tr := NewMapReplace(map[string]string{"yes": "no"})
	if Involutive(tr) {
		t.Fatal("map replace is not involutive")
	}
	out, _ := tr.Transform("yes", RowContext{})
	if out != "no" {
		t.Fatalf("unexpected output: %v", out)
	}
	out, _ = tr.Transform("maybe", RowContext{})
	if out != "maybe" {
		t.Fatalf("unmapped value changed: %v", out)
	}
}

func TestBuild(t *testing.T) {
	for _, name := range []string{"Atbash", "ROT13", "identity", "none", ""} {
		tr, err := Build(&config.TransformConfig{Type: name})
		if err != nil {
			t.Fatalf("%q: %v", name, err)
		}
		if tr == nil {
			t.Fatalf("%q: nil transformer", name)
		}
	}
	if tr, err := Build(nil); tr != nil || err != nil {
		t.Fatalf("nil config should build nothing: %v, %v", tr, err)
	}
	if _, err := ByName("vigenere"); err == nil {
		t.Fatal("expected error for unknown cipher")
	}
}

func TestRegister(t *testing.T) {
	Register("Upper", func(cfg *config.TransformConfig) (Transformer, error) {
		return NewStringCipher("Upper", func(s string) string { return s + "!" }, false), nil
	})
	defer delete(registry, "upper")
	tr, err := ByName("upper")
	if err != nil {
		t.Fatal(err)
	}
	out, _ := tr.Transform("a", RowContext{})
	if out != "a!" {
		t.Fatalf("unexpected output: %v", out)
	}
	names := Names()
	if names[0] != "atbash" || names[len(names)-1] != "upper" {
		t.Fatalf("unexpected names: %v", names)
	}
}
