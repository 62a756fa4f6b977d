package transform

import (
	"slices"
	"sort"
	"strings"

	"github.com/dyne/atbash/internal/config"
)

type Factory func(cfg *config.TransformConfig) (Transformer, error)

var registry = map[string]Factory{}

// Register makes a cipher available to Build under a case-insensitive name.
// Registered names take precedence over the built-in ones.
func Register(name string, factory Factory) {
	if name == "" || factory == nil {
		return
	}
	registry[strings.ToLower(name)] = factory
}

func registerPlugin(name string, fn func(string) string) {
	Register(name, func(cfg *config.TransformConfig) (Transformer, error) {
		return NewStringCipher(name, fn, false), nil
	})
}

// Names lists the cipher names Build accepts, built-ins first.
func Names() []string {
	names := []string{"atbash", "rot13", "identity", "map"}
	var extra []string
	for name := range registry {
		if !slices.Contains(names, name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
