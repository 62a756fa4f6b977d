package atbash

import (
	"sync"
	"testing"
	"testing/quick"
	"unicode/utf8"
)

func TestStringScenarios(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"abc", "zyx"},
		{"XYZ", "CBA"},
		{"Hello, World! 123", "Svool, Dliow! 123"},
		{"가나다", "힣팋킿"},
		{"", ""},
		{"안녕하세요", "빛퉎깋쉫봏"},
		{"a가Z\n\t", "z힣A\n\t"},
	}
	for _, tc := range cases {
		if got := String(tc.in); got != tc.want {
			t.Fatalf("String(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHangulMatchesFormula(t *testing.T) {
	for _, c := range "가나다라마힣" {
		want := rune(0xAC00+0xD7A3) - c
		if got := Rune(c); got != want {
			t.Fatalf("Rune(%U) = %U, want %U", c, got, want)
		}
	}
	if got := Rune('가'); got != '힣' {
		t.Fatalf("Rune(가) = %q", got)
	}
}

func TestLatinMatchesFormula(t *testing.T) {
	for _, r := range []Range{LatinLowerRange, LatinUpperRange} {
		for c := r.Low; c <= r.High; c++ {
			if got, want := Rune(c), r.Low+r.High-c; got != want {
				t.Fatalf("Rune(%q) = %q, want %q", c, got, want)
			}
		}
	}
	var want []rune
	for _, c := range "World" {
		if c >= 'a' {
			want = append(want, 'a'+'z'-c)
		} else {
			want = append(want, 'A'+'Z'-c)
		}
	}
	if got := String("World"); got != string(want) || got != "Dliow" {
		t.Fatalf("String(World) = %q, want %q", got, string(want))
	}
}

func TestTransformAbsent(t *testing.T) {
	if out := Transform(nil); out != nil {
		t.Fatalf("expected nil, got %q", *out)
	}
	in := "abc"
	out := Transform(&in)
	if out == nil || *out != "zyx" {
		t.Fatalf("unexpected output: %v", out)
	}
	if in != "abc" {
		t.Fatalf("input modified: %q", in)
	}
	empty := ""
	if out := Transform(&empty); out == nil || *out != "" {
		t.Fatalf("empty input should give empty output, got %v", out)
	}
}

func TestInvolution(t *testing.T) {
	f := func(s string) bool {
		return String(String(s)) == s
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
	invalid := "ab\xffc\xe0\x80가"
	if got := String(String(invalid)); got != invalid {
		t.Fatalf("invalid utf-8 not preserved: %q", got)
	}
}

func TestLengthPreserved(t *testing.T) {
	f := func(s string) bool {
		return utf8.RuneCountInString(String(s)) == utf8.RuneCountInString(s) && len(String(s)) == len(s)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestNoFixedPointsInsideAlphabets(t *testing.T) {
	for _, r := range []Range{LatinLowerRange, LatinUpperRange, HangulSyllablesRange} {
		if r.Size()%2 != 0 {
			t.Fatalf("range %U-%U has odd size %d", r.Low, r.High, r.Size())
		}
		for c := r.Low; c <= r.High; c++ {
			out := Rune(c)
			if out == c {
				t.Fatalf("%U maps to itself", c)
			}
			if !r.Contains(out) {
				t.Fatalf("%U left its alphabet: %U", c, out)
			}
			if Rune(out) != c {
				t.Fatalf("%U is not restored", c)
			}
		}
	}
}

func TestOtherRunesPassThrough(t *testing.T) {
	samples := []rune{
		0, ' ', '0', '9', '@', '[', '`', '{', '~', 'é', 'ß', 'Ω',
		0x3131, // ㄱ compatibility jamo
		0x1100, // ᄀ leading jamo
		0xABFF, 0xD7A4, 0xD7B0, '中', '😀', utf8.RuneError,
	}
	for _, c := range samples {
		if Classify(c) != Other {
			t.Fatalf("%U classified as %s", c, Classify(c))
		}
		if got := Rune(c); got != c {
			t.Fatalf("Rune(%U) = %U", c, got)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := map[rune]Class{
		'a': LatinLower, 'z': LatinLower,
		'A': LatinUpper, 'Z': LatinUpper,
		'가': Hangul, '힣': Hangul,
		'1': Other,
	}
	for c, want := range cases {
		if got := Classify(c); got != want {
			t.Fatalf("Classify(%q) = %s, want %s", c, got, want)
		}
	}
	if _, ok := Other.Range(); ok {
		t.Fatal("Other should have no range")
	}
}

func TestBytes(t *testing.T) {
	if Bytes(nil) != nil {
		t.Fatal("nil bytes should stay nil")
	}
	in := []byte("Hello 가\xff")
	out := Bytes(in)
	if string(out) != String(string(in)) {
		t.Fatalf("Bytes and String disagree: %q vs %q", out, String(string(in)))
	}
	if string(Bytes(out)) != string(in) {
		t.Fatalf("round trip failed: %q", Bytes(out))
	}
}

func TestHasLetters(t *testing.T) {
	if HasLetters("123 !?") {
		t.Fatal("digits and punctuation have no letters")
	}
	if !HasLetters("12가") {
		t.Fatal("hangul syllable should count")
	}
}

func TestConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if String("Hello, 세계") != "Svool, 쉫훟" {
					t.Error("unexpected output under concurrency")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func FuzzString(f *testing.F) {
	f.Add("abc")
	f.Add("Hello, World! 123")
	f.Add("가나다")
	f.Add("\xff\xfe")
	f.Fuzz(func(t *testing.T, s string) {
		out := String(s)
		if len(out) != len(s) {
			t.Fatalf("length changed: %d -> %d", len(s), len(out))
		}
		if String(out) != s {
			t.Fatalf("not an involution for %q", s)
		}
	})
}
