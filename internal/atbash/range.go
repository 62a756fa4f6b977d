package atbash

// Range is a closed, contiguous block of code points that forms one
// alphabet. Reflection maps the first code point to the last, the second
// to the second-to-last, and so on.
type Range struct {
	Low  rune
	High rune
}

func (r Range) Contains(c rune) bool {
	return c >= r.Low && c <= r.High
}

// Reflect mirrors c about the midpoint of the range. The caller must check
// Contains first; values outside the range are reflected arithmetically.
func (r Range) Reflect(c rune) rune {
	return r.Low + r.High - c
}

func (r Range) Size() int {
	return int(r.High-r.Low) + 1
}

var (
	LatinLowerRange      = Range{Low: 'a', High: 'z'}
	LatinUpperRange      = Range{Low: 'A', High: 'Z'}
	HangulSyllablesRange = Range{Low: 0xAC00, High: 0xD7A3} // 가..힣
)

type Class int

const (
	Other Class = iota
	LatinLower
	LatinUpper
	Hangul
)

func (c Class) String() string {
	switch c {
	case LatinLower:
		return "latin-lower"
	case LatinUpper:
		return "latin-upper"
	case Hangul:
		return "hangul"
	default:
		return "other"
	}
}

// Range returns the alphabet of the class. ok is false for Other.
func (c Class) Range() (Range, bool) {
	switch c {
	case LatinLower:
		return LatinLowerRange, true
	case LatinUpper:
		return LatinUpperRange, true
	case Hangul:
		return HangulSyllablesRange, true
	default:
		return Range{}, false
	}
}

func Classify(c rune) Class {
	switch {
	case LatinLowerRange.Contains(c):
		return LatinLower
	case LatinUpperRange.Contains(c):
		return LatinUpper
	case HangulSyllablesRange.Contains(c):
		return Hangul
	default:
		return Other
	}
}
