//go:build linux || darwin

package transform

import (
	"fmt"
	"os"
	"path/filepath"
	"plugin"
	"runtime"
	"sort"
	"strings"
)

func LoadPlugins(paths []string) error {
	for _, path := range paths {
		if path == "" {
			continue
		}
		resolved, err := resolvePluginPaths(path)
		if err != nil {
			return err
		}
		for _, pluginPath := range resolved {
			p, err := plugin.Open(pluginPath)
			if err != nil {
				return fmt.Errorf("open plugin %s: %w", pluginPath, err)
			}
			sym, err := p.Lookup("Ciphers")
			if err != nil {
				return fmt.Errorf("plugin %s: missing Ciphers symbol", pluginPath)
			}
			if err := registerPluginSymbol(pluginPath, sym); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolvePluginPaths(path string) ([]string, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return resolvePluginsInDir(path)
	}
	if fileExists(path) {
		return []string{path}, nil
	}
	base := path
	ext := filepath.Ext(path)
	if ext == ".so" {
		base = strings.TrimSuffix(path, ext)
	}
	candidates := []string{
		fmt.Sprintf("%s.%s.%s.so", base, runtime.GOOS, runtime.GOARCH),
		fmt.Sprintf("%s.%s.so", base, runtime.GOARCH),
	}
	for _, cand := range candidates {
		if fileExists(cand) {
			return []string{cand}, nil
		}
	}
	return nil, fmt.Errorf("plugin not found: %s (tried %s)", path, strings.Join(candidates, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func resolvePluginsInDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read plugin dir %s: %w", dir, err)
	}
	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".so") {
			continue
		}
		if isCompatiblePlugin(name) {
			matches = append(matches, filepath.Join(dir, name))
		}
	}
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no compatible plugins found in %s", dir)
	}
	return matches, nil
}

// isCompatiblePlugin rejects plugins built for another platform. Names
// without a platform suffix are accepted.
func isCompatiblePlugin(name string) bool {
	base := strings.TrimSuffix(name, ".so")
	parts := strings.Split(base, ".")
	if len(parts) < 2 {
		return true
	}
	arch := parts[len(parts)-1]
	if !knownArch(arch) {
		return true
	}
	if arch != runtime.GOARCH {
		return false
	}
	if len(parts) >= 3 && knownOS(parts[len(parts)-2]) {
		return parts[len(parts)-2] == runtime.GOOS
	}
	return true
}

func knownArch(s string) bool {
	switch s {
	case "amd64", "arm64", "386", "arm", "riscv64", "ppc64le", "s390x":
		return true
	}
	return false
}

func knownOS(s string) bool {
	return s == "linux" || s == "darwin"
}

func registerPluginSymbol(path string, sym any) error {
	var ciphers map[string]func(string) string
	switch v := sym.(type) {
	case map[string]func(string) string:
		ciphers = v
	case *map[string]func(string) string:
		ciphers = *v
	default:
		return fmt.Errorf("plugin %s: Ciphers has incompatible type %T", path, sym)
	}
	for name, fn := range ciphers {
		if fn == nil {
			return fmt.Errorf("plugin %s: cipher %s is nil", path, name)
		}
		registerPlugin(name, fn)
	}
	return nil
}
