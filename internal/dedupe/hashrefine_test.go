package dedupe

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/finder-tools/dupfind/internal/config"
)

func TestHashPrecondition(t *testing.T) {
	two := []*FileEntry{{Size: 10}, {Size: 10}}
	three := []*FileEntry{{Size: 10}, {Size: 10}, {Size: 10}}
	threeEmpty := []*FileEntry{{Size: 0}, {Size: 0}, {Size: 0}}

	if hashPrecondition(two) {
		t.Error("hashPrecondition() true for cardinality 2, want false (goes straight to binary)")
	}
	if !hashPrecondition(three) {
		t.Error("hashPrecondition() false for cardinality 3 nonempty")
	}
	if hashPrecondition(threeEmpty) {
		t.Error("hashPrecondition() true for zero-size files")
	}
}

func TestHashBuffer_SizeIsMultipleOfSmaller(t *testing.T) {
	buf := hashBuffer(4096)
	if len(buf) == 0 {
		t.Fatal("hashBuffer() returned empty buffer")
	}
	if len(buf)%hashBlockSize != 0 && hashBlockSize%len(buf) != 0 {
		t.Errorf("hashBuffer(4096) = %d, not a clean multiple of hashBlockSize %d", len(buf), hashBlockSize)
	}
}

func TestHashFile_MatchesForIdenticalContent(t *testing.T) {
	dir := t.TempDir()
	content := make([]byte, hashBlockSize*3+123)
	for i := range content {
		content[i] = byte(i * 7)
	}
	pathA := filepath.Join(dir, "a.bin")
	pathB := filepath.Join(dir, "b.bin")
	if err := os.WriteFile(pathA, content, 0o644); err != nil {
		t.Fatalf("WriteFile(a) error = %v", err)
	}
	if err := os.WriteFile(pathB, content, 0o644); err != nil {
		t.Fatalf("WriteFile(b) error = %v", err)
	}

	ha, err := hashFile(&FileEntry{Path: pathA}, hashBlockSize)
	if err != nil {
		t.Fatalf("hashFile(a) error = %v", err)
	}
	hb, err := hashFile(&FileEntry{Path: pathB}, hashBlockSize)
	if err != nil {
		t.Fatalf("hashFile(b) error = %v", err)
	}
	if ha != hb {
		t.Errorf("hashFile() differs for identical content: %v vs %v", ha, hb)
	}
}

func TestRefineHash_SplitsThreeWayGroupOnContent(t *testing.T) {
	dir := t.TempDir()
	size := int64(10)
	mk := func(name string, b byte) *FileEntry {
		p := filepath.Join(dir, name)
		content := make([]byte, size)
		for i := range content {
			content[i] = b
		}
		if err := os.WriteFile(p, content, 0o644); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", name, err)
		}
		return &FileEntry{Path: p, Size: size, Type: TypeRegular}
	}

	a := mk("a.bin", 1)
	b := mk("b.bin", 1)
	c := mk("c.bin", 2)

	tree := NewTree([]*FileEntry{a, b, c})
	opts := config.New(nil)
	refineHash(context.Background(), tree, opts, nil)

	leaves := tree.Leaves()
	if len(leaves) != 1 {
		t.Fatalf("Leaves() = %d, want 1", len(leaves))
	}
	if got := len(tree.LeafEntries(leaves[0])); got != 2 {
		t.Errorf("surviving leaf has %d members, want 2", got)
	}
}
