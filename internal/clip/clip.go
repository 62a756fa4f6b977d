// Package clip copies cipher output to the system clipboard.
package clip

import (
	"fmt"

	"github.com/atotto/clipboard"
)

type Writer interface {
	WriteAll(text string) error
}

type System struct{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not available on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Copy writes text verbatim. Empty text is not copied and reports false,
// matching a copy button that does nothing without output.
func Copy(w Writer, text string) (bool, error) {
	if text == "" {
		return false, nil
	}
	if err := w.WriteAll(text); err != nil {
		return false, err
	}
	return true, nil
}

// Memory is an in-process clipboard.
type Memory struct {
	Text string
}

func (m *Memory) WriteAll(text string) error {
	m.Text = text
	return nil
}
