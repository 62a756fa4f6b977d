package transform

import (
	"fmt"
	"strings"

	"github.com/dyne/atbash/internal/config"
)

func Build(cfg *config.TransformConfig) (Transformer, error) {
	if cfg == nil {
		return nil, nil
	}
	key := strings.ToLower(cfg.Type)
	if key == "" {
		key = config.DefaultCipher
	}
	if factory, ok := registry[key]; ok {
		return factory(cfg)
	}
	switch key {
	case "atbash":
		return NewAtbash(), nil
	case "rot13":
		return NewRot13(), nil
	case "identity", "none":
		return NewIdentity(), nil
	case "map":
		return NewMapReplace(cfg.Map), nil
	default:
		return nil, fmt.Errorf("unknown cipher: %s", cfg.Type)
	}
}

// ByName builds a transformer that takes no parameters.
func ByName(name string) (Transformer, error) {
	return Build(&config.TransformConfig{Type: name})
}
