package dedupe

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCompareFiles_Identical(t *testing.T) {
	dir := t.TempDir()
	content := make([]byte, binaryCompareBuf*2+17)
	for i := range content {
		content[i] = byte(i)
	}
	pathA := filepath.Join(dir, "a.bin")
	pathB := filepath.Join(dir, "b.bin")
	if err := os.WriteFile(pathA, content, 0o644); err != nil {
		t.Fatalf("WriteFile(a) error = %v", err)
	}
	if err := os.WriteFile(pathB, content, 0o644); err != nil {
		t.Fatalf("WriteFile(b) error = %v", err)
	}

	equal, err := compareFiles(pathA, pathB)
	if err != nil {
		t.Fatalf("compareFiles() error = %v", err)
	}
	if !equal {
		t.Error("compareFiles() = false for identical content")
	}
}

func TestCompareFiles_DifferentLastByte(t *testing.T) {
	dir := t.TempDir()
	content := make([]byte, binaryCompareBuf+5)
	altered := make([]byte, len(content))
	copy(altered, content)
	altered[len(altered)-1] = 0xFF

	pathA := filepath.Join(dir, "a.bin")
	pathB := filepath.Join(dir, "b.bin")
	if err := os.WriteFile(pathA, content, 0o644); err != nil {
		t.Fatalf("WriteFile(a) error = %v", err)
	}
	if err := os.WriteFile(pathB, altered, 0o644); err != nil {
		t.Fatalf("WriteFile(b) error = %v", err)
	}

	equal, err := compareFiles(pathA, pathB)
	if err != nil {
		t.Fatalf("compareFiles() error = %v", err)
	}
	if equal {
		t.Error("compareFiles() = true for content differing in last byte")
	}
}

func TestCompareFiles_MissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.bin")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := compareFiles(path, filepath.Join(dir, "missing.bin"))
	if err == nil {
		t.Error("compareFiles() expected error for missing second file")
	}
}

func TestRefineBinary_DropsMismatchedPair(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.bin")
	pathB := filepath.Join(dir, "b.bin")
	if err := os.WriteFile(pathA, []byte("same-size-A"), 0o644); err != nil {
		t.Fatalf("WriteFile(a) error = %v", err)
	}
	if err := os.WriteFile(pathB, []byte("same-size-B"), 0o644); err != nil {
		t.Fatalf("WriteFile(b) error = %v", err)
	}

	fa := &FileEntry{Index: 0, Path: pathA, Size: 11, Type: TypeRegular}
	fb := &FileEntry{Index: 1, Path: pathB, Size: 11, Type: TypeRegular}
	tree := NewTree([]*FileEntry{fa, fb})

	refineBinary(tree, nil)

	if leaves := tree.Leaves(); len(leaves) != 0 {
		t.Errorf("Leaves() = %d after binary mismatch, want 0", len(leaves))
	}
}

func TestRefineBinary_KeepsMatchedPair(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.bin")
	pathB := filepath.Join(dir, "b.bin")
	if err := os.WriteFile(pathA, []byte("identical"), 0o644); err != nil {
		t.Fatalf("WriteFile(a) error = %v", err)
	}
	if err := os.WriteFile(pathB, []byte("identical"), 0o644); err != nil {
		t.Fatalf("WriteFile(b) error = %v", err)
	}

	fa := &FileEntry{Index: 0, Path: pathA, Size: 9, Type: TypeRegular}
	fb := &FileEntry{Index: 1, Path: pathB, Size: 9, Type: TypeRegular}
	tree := NewTree([]*FileEntry{fa, fb})

	refineBinary(tree, nil)

	leaves := tree.Leaves()
	if len(leaves) != 1 {
		t.Fatalf("Leaves() = %d after binary match, want 1", len(leaves))
	}
	if got := len(tree.LeafEntries(leaves[0])); got != 2 {
		t.Errorf("surviving leaf has %d members, want 2", got)
	}
}

func TestRefineBinary_SkipsCardinalityThreeLeaf(t *testing.T) {
	// Simulate a post-hash-confirmed trio reaching the binary refiner: it
	// must be left untouched (accepted as confirmed), not pruned.
	dir := t.TempDir()
	paths := make([]string, 3)
	entries := make([]*FileEntry, 3)
	for i := range paths {
		p := filepath.Join(dir, string(rune('a'+i))+".bin")
		if err := os.WriteFile(p, []byte("same"), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		paths[i] = p
		entries[i] = &FileEntry{Index: int64(i), Path: p, Size: 4, Type: TypeRegular}
	}
	tree := NewTree(entries)

	refineBinary(tree, nil)

	leaves := tree.Leaves()
	if len(leaves) != 1 {
		t.Fatalf("Leaves() = %d, want 1 (trio left untouched)", len(leaves))
	}
	if got := len(tree.LeafEntries(leaves[0])); got != 3 {
		t.Errorf("leaf has %d members, want 3", got)
	}
}
