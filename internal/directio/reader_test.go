package directio

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_ReadsContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	want := []byte("the quick brown fox jumps over the lazy dog")
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	for _, direct := range []bool{false, true} {
		r, err := Open(path, direct)
		if err != nil {
			t.Fatalf("Open(direct=%v) error = %v", direct, err)
		}
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("ReadAll(direct=%v) error = %v", direct, err)
		}
		if err := r.Close(); err != nil {
			t.Fatalf("Close(direct=%v) error = %v", direct, err)
		}
		if string(got) != string(want) {
			t.Errorf("Open(direct=%v) content = %q, want %q", direct, got, want)
		}
	}
}

func TestOpen_NonexistentPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.bin"), false)
	if err == nil {
		t.Error("Open() expected error for nonexistent path")
	}
}

func TestOpenBuffered_ReadsContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	if err := os.WriteFile(path, []byte("buffered"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	r, err := openBuffered(path)
	if err != nil {
		t.Fatalf("openBuffered() error = %v", err)
	}
	defer r.Close()

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "buffered" {
		t.Errorf("openBuffered() content = %q, want %q", got, "buffered")
	}
}
