package textfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"notes":          "notes.txt",
		"notes.txt":      "notes.txt",
		"NOTES.TXT":      "NOTES.TXT",
		"notes.md":       "notes.md.txt",
		"dir/secret.Txt": "dir/secret.Txt",
	}
	for in, want := range cases {
		if got := NormalizePath(in); got != want {
			t.Fatalf("NormalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	written, err := Save(filepath.Join(dir, "sub", "out"), "Svool, 쉫훟")
	if err != nil {
		t.Fatal(err)
	}
	if written != filepath.Join(dir, "sub", "out.txt") {
		t.Fatalf("unexpected path: %s", written)
	}
	text, err := Load(written)
	if err != nil {
		t.Fatal(err)
	}
	if text != "Svool, 쉫훟" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestErrors(t *testing.T) {
	if _, err := Load(""); !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath, got %v", err)
	}
	if _, err := Save("", "x"); !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath, got %v", err)
	}
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
