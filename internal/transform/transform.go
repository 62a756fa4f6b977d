package transform

import (
	"github.com/dyne/atbash/internal/atbash"
)

type RowContext struct {
	Table  string
	Column string
	PK     []any
}

type Transformer interface {
	Name() string
	Transform(value any, row RowContext) (any, error)
}

// Involution is implemented by ciphers that are their own inverse.
type Involution interface {
	Involutive() bool
}

func Involutive(tr Transformer) bool {
	inv, ok := tr.(Involution)
	return ok && inv.Involutive()
}

// StringCipher adapts a text-to-text function to a Transformer. Text
// values (string and []byte) are ciphered, nil stays nil and every other
// value is returned untouched.
type StringCipher struct {
	name      string
	fn        func(string) string
	bytesFn   func([]byte) []byte
	involutes bool
}

func NewStringCipher(name string, fn func(string) string, involutive bool) *StringCipher {
	return &StringCipher{name: name, fn: fn, involutes: involutive}
}

func (t *StringCipher) Name() string { return t.name }

func (t *StringCipher) Involutive() bool { return t.involutes }

func (t *StringCipher) Transform(value any, row RowContext) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return t.fn(v), nil
	case []byte:
		if t.bytesFn != nil {
			return t.bytesFn(v), nil
		}
		return []byte(t.fn(string(v))), nil
	default:
		return v, nil
	}
}

func NewAtbash() *StringCipher {
	c := NewStringCipher("Atbash", atbash.String, true)
	c.bytesFn = atbash.Bytes
	return c
}

func NewRot13() *StringCipher {
	return NewStringCipher("Rot13", rot13, true)
}

func NewIdentity() *StringCipher {
	return NewStringCipher("Identity", func(s string) string { return s }, true)
}

func rot13(input string) string {
	out := []byte(input)
	for i, b := range out {
		switch {
		case b >= 'a' && b <= 'z':
			out[i] = 'a' + (b-'a'+13)%26
		case b >= 'A' && b <= 'Z':
			out[i] = 'A' + (b-'A'+13)%26
		}
	}
	return string(out)
}

type MapReplace struct{ m map[string]string }

func NewMapReplace(m map[string]string) *MapReplace { return &MapReplace{m: m} }

func (t *MapReplace) Name() string { return "MapReplace" }

func (t *MapReplace) Transform(value any, row RowContext) (any, error) {
	var s string
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return v, nil
	}
	if v, ok := t.m[s]; ok {
		return v, nil
	}
	return value, nil
}
