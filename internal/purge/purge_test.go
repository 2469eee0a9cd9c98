package purge

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/finder-tools/dupfind/internal/logger"
)

func init() {
	logger.Init("error", "text", io.Discard)
}

func mustWrite(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
}

func TestKeepOrder_LowestIndexFirst(t *testing.T) {
	c := Class{Entries: []Entry{
		{Path: "/b", Index: 2},
		{Path: "/a", Index: 0},
		{Path: "/c", Index: 1},
	}}
	ordered := keepOrder(c)
	if ordered[0].Path != "/a" {
		t.Errorf("keepOrder()[0] = %q, want /a", ordered[0].Path)
	}
}

func TestKeepOrder_TieBrokenByNewerMtimeFirst(t *testing.T) {
	older := time.Unix(1000, 0)
	newer := time.Unix(2000, 0)
	c := Class{Entries: []Entry{
		{Path: "/older", Index: 0, ModTime: older},
		{Path: "/newer", Index: 0, ModTime: newer},
	}}
	ordered := keepOrder(c)
	if ordered[0].Path != "/newer" {
		t.Errorf("keepOrder()[0] = %q, want /newer (newer mtime sorts first on index tie)", ordered[0].Path)
	}
}

func TestKeepOrder_FinalTieBrokenByPath(t *testing.T) {
	same := time.Unix(1000, 0)
	c := Class{Entries: []Entry{
		{Path: "/z", Index: 0, ModTime: same},
		{Path: "/a", Index: 0, ModTime: same},
	}}
	ordered := keepOrder(c)
	if ordered[0].Path != "/a" {
		t.Errorf("keepOrder()[0] = %q, want /a", ordered[0].Path)
	}
}

func TestRun_DeletesAllButKeepCandidate(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.txt")
	pathB := filepath.Join(dir, "b.txt")
	mustWrite(t, pathA, []byte("dup"))
	mustWrite(t, pathB, []byte("dup"))

	classes := []Class{{Entries: []Entry{
		{Path: pathA, Index: 0},
		{Path: pathB, Index: 1},
	}}}

	deleted, deleteErrors := Run(classes, false, nil, nil)
	if len(deleteErrors) != 0 {
		t.Fatalf("Run() deleteErrors = %v, want none", deleteErrors)
	}
	if len(deleted) != 1 || deleted[0] != pathB {
		t.Fatalf("Run() deleted = %v, want [%s]", deleted, pathB)
	}
	if _, err := os.Stat(pathA); err != nil {
		t.Errorf("keep candidate %s should survive: %v", pathA, err)
	}
	if _, err := os.Stat(pathB); !os.IsNotExist(err) {
		t.Errorf("%s should have been deleted, stat err = %v", pathB, err)
	}
}

func TestRun_OnDeleteVetoSkipsDeletion(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.txt")
	pathB := filepath.Join(dir, "b.txt")
	mustWrite(t, pathA, []byte("dup"))
	mustWrite(t, pathB, []byte("dup"))

	classes := []Class{{Entries: []Entry{
		{Path: pathA, Index: 0},
		{Path: pathB, Index: 1},
	}}}

	veto := func(string) error { return errTest }
	deleted, _ := Run(classes, false, veto, nil)
	if len(deleted) != 0 {
		t.Errorf("Run() deleted %v despite veto, want none", deleted)
	}
	if _, err := os.Stat(pathB); err != nil {
		t.Errorf("%s should survive a vetoed delete: %v", pathB, err)
	}
}

func TestRun_MultipleClassesIndependent(t *testing.T) {
	dir := t.TempDir()
	a1, a2 := filepath.Join(dir, "a1.txt"), filepath.Join(dir, "a2.txt")
	b1, b2 := filepath.Join(dir, "b1.txt"), filepath.Join(dir, "b2.txt")
	for _, p := range []string{a1, a2, b1, b2} {
		mustWrite(t, p, []byte("content"))
	}

	classes := []Class{
		{Entries: []Entry{{Path: a1, Index: 0}, {Path: a2, Index: 1}}},
		{Entries: []Entry{{Path: b1, Index: 0}, {Path: b2, Index: 1}}},
	}

	deleted, deleteErrors := Run(classes, false, nil, nil)
	if len(deleteErrors) != 0 {
		t.Fatalf("Run() deleteErrors = %v", deleteErrors)
	}
	if len(deleted) != 2 {
		t.Fatalf("Run() deleted %d paths, want 2", len(deleted))
	}
}

type testError struct{ msg string }

func (e testError) Error() string { return e.msg }

var errTest = testError{"veto"}
