// Package purge implements the purger (spec §4.11): given a confirmed
// duplicate class, pick a deterministic keep candidate and remove the
// rest, to trash or permanently. It is deliberately independent of
// internal/dedupe's types (Entry here is the minimal projection purge
// needs) so dedupe.Purge can sit on top of it without an import cycle.
package purge

import (
	"os"
	"sort"
	"time"

	"github.com/finder-tools/dupfind/internal/logger"
)

// Entry is the minimal per-file metadata purge's keep-selection ordering
// needs: spec §4.11's sort key is (index, -mtime, path).
type Entry struct {
	Path    string
	Index   int64
	ModTime time.Time
}

// Class is one confirmed duplicate class to purge.
type Class struct {
	Entries []Entry
}

// DeleteError records a path where deletion failed.
type DeleteError struct {
	Path string
	Err  error
}

func (e *DeleteError) Error() string { return "delete " + e.Path + ": " + e.Err.Error() }
func (e *DeleteError) Unwrap() error { return e.Err }

// Run deletes every class member except the keep candidate, per class,
// honoring the onDelete veto hook (§6's on_delete callback) and routing
// deletions through trash integration when trash is true.
func Run(classes []Class, trash bool, onDelete func(string) error, onError func(error, string)) (deleted []string, deleteErrors []DeleteError) {
	if onDelete == nil {
		onDelete = func(string) error { return nil }
	}
	if onError == nil {
		onError = func(error, string) {}
	}

	for _, class := range classes {
		members := keepOrder(class)
		for _, e := range members[1:] {
			path := e.Path

			if err := onDelete(path); err != nil {
				continue
			}

			if err := remove(path, trash); err != nil {
				onError(err, path)
				if os.IsNotExist(err) {
					continue
				}
				deleteErrors = append(deleteErrors, DeleteError{Path: path, Err: err})
				continue
			}

			deleted = append(deleted, path)
		}
	}

	logger.Info("purge complete", "deleted", len(deleted), "delete_errors", len(deleteErrors))
	return deleted, deleteErrors
}

// keepOrder sorts a class's entries by (index, -mtime, path) so the
// "keep" candidate — the oldest first-encountered entry — sorts first
// (§4.11, resolved per DESIGN.md to add -mtime to the Python original's
// plain (index, path) sort).
func keepOrder(class Class) []Entry {
	members := make([]Entry, len(class.Entries))
	copy(members, class.Entries)

	sort.Slice(members, func(i, j int) bool {
		if members[i].Index != members[j].Index {
			return members[i].Index < members[j].Index
		}
		if !members[i].ModTime.Equal(members[j].ModTime) {
			return members[i].ModTime.After(members[j].ModTime)
		}
		return members[i].Path < members[j].Path
	})
	return members
}
