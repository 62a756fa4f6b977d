// Package theme defines the light and dark colour palettes used when the
// tool writes to a terminal.
package theme

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

type Mode int

const (
	Light Mode = iota
	Dark
)

func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "light":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return Light, fmt.Errorf("unknown theme: %s", s)
	}
}

type Palette struct {
	Background      string
	TextArea        string
	OutputTextArea  string
	Foreground      string
	PrimaryButton   string
	SecondaryButton string
	Border          string
}

var palettes = map[Mode]Palette{
	Light: {
		Background:      "#F5F7F9",
		TextArea:        "#FFFFFF",
		OutputTextArea:  "#EBEDEF",
		Foreground:      "#323232",
		PrimaryButton:   "#007BFF",
		SecondaryButton: "#6C757D",
		Border:          "#DCDFE2",
	},
	Dark: {
		Background:      "#2B2B2B",
		TextArea:        "#3C3F41",
		OutputTextArea:  "#323436",
		Foreground:      "#DCDCDC",
		PrimaryButton:   "#0275D8",
		SecondaryButton: "#5A6268",
		Border:          "#505050",
	},
}

func (m Mode) Palette() Palette {
	return palettes[m]
}

// Styler colours short status lines according to the palette. On writers
// that are not terminals it emits plain text.
type Styler struct {
	out     *termenv.Output
	palette Palette
}

func NewStyler(w io.Writer, mode Mode) *Styler {
	return &Styler{out: termenv.NewOutput(w), palette: mode.Palette()}
}

// Feedback renders a confirmation message in the primary button colour.
func (s *Styler) Feedback(msg string) string {
	return s.out.String(msg).Foreground(s.out.Color(s.palette.PrimaryButton)).Bold().String()
}

// Label renders a section label in the secondary button colour.
func (s *Styler) Label(msg string) string {
	return s.out.String(msg).Foreground(s.out.Color(s.palette.SecondaryButton)).String()
}
