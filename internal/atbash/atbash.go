// Package atbash implements the Atbash substitution cipher over Latin
// letters and precomposed Hangul syllables.
//
// Every letter is replaced by its mirror within its own alphabet; all
// other runes are kept as is. The mapping is its own inverse, so the same
// call both encrypts and decrypts.
package atbash

import (
	"strings"
	"unicode/utf8"
)

// Rune returns the Atbash counterpart of c.
func Rune(c rune) rune {
	if r, ok := Classify(c).Range(); ok {
		return r.Reflect(c)
	}
	return c
}

// String applies Rune to every rune of s. Bytes that are not valid UTF-8
// are copied through unchanged.
func String(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i, c := range s {
		if c == utf8.RuneError {
			if _, n := utf8.DecodeRuneInString(s[i:]); n == 1 {
				b.WriteByte(s[i])
				continue
			}
		}
		b.WriteRune(Rune(c))
	}
	return b.String()
}

// Transform is String for optional text: a nil input yields a nil result.
func Transform(s *string) *string {
	if s == nil {
		return nil
	}
	out := String(*s)
	return &out
}

// Bytes ciphers UTF-8 encoded text.
func Bytes(p []byte) []byte {
	if p == nil {
		return nil
	}
	out := make([]byte, 0, len(p))
	for len(p) > 0 {
		c, n := utf8.DecodeRune(p)
		if c == utf8.RuneError && n == 1 {
			out = append(out, p[0])
		} else {
			out = utf8.AppendRune(out, Rune(c))
		}
		p = p[n:]
	}
	return out
}

// HasLetters reports whether s contains at least one rune the cipher changes.
func HasLetters(s string) bool {
	for _, c := range s {
		if Classify(c) != Other {
			return true
		}
	}
	return false
}
