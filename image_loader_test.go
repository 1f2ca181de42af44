package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempImage(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.hex")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestLoadImageParsesWhitespaceSeparatedWords(t *testing.T) {
	path := writeTempImage(t, "0x00000013 0x00100093\n0xDEADBEEF")
	words, err := LoadImage(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []uint32{0x00000013, 0x00100093, 0xDEADBEEF}
	if len(words) != len(want) {
		t.Fatalf("got %d words, want %d", len(words), len(want))
	}
	for i := range want {
		if words[i] != want[i] {
			t.Fatalf("word %d = 0x%X, want 0x%X", i, words[i], want[i])
		}
	}
}

func TestLoadImageAcceptsUnderscoresAndNoPrefix(t *testing.T) {
	path := writeTempImage(t, "DEAD_BEEF")
	words, err := LoadImage(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(words) != 1 || words[0] != 0xDEADBEEF {
		t.Fatalf("got %v, want [0xDEADBEEF]", words)
	}
}

func TestLoadImageRejectsInvalidToken(t *testing.T) {
	path := writeTempImage(t, "0xZZZZ")
	if _, err := LoadImage(path); err == nil {
		t.Fatalf("expected error for invalid hex token")
	}
}

func TestLoadImageMissingFile(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.hex")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
