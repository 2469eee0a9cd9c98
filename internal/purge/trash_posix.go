//go:build !windows

package purge

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// trashFile implements the freedesktop.org Trash specification's home
// trash directory (~/.local/share/Trash/{files,info}): no library in the
// retrieval pack wraps this (the Python original shells out to
// send2trash, which has no Go equivalent anywhere in the pack either —
// see DESIGN.md), so it's hand-rolled directly against os/path/filepath,
// matching the spec's minimal "move file, write sidecar .trashinfo"
// contract rather than the full XDG spec (no multi-filesystem
// $topdir/.Trash-$uid support).
func trashFile(path string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("purge: resolving home directory: %w", err)
	}

	trashDir := filepath.Join(home, ".local", "share", "Trash")
	filesDir := filepath.Join(trashDir, "files")
	infoDir := filepath.Join(trashDir, "info")
	if err := os.MkdirAll(filesDir, 0o700); err != nil {
		return fmt.Errorf("purge: creating trash files dir: %w", err)
	}
	if err := os.MkdirAll(infoDir, 0o700); err != nil {
		return fmt.Errorf("purge: creating trash info dir: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	name := trashEntryName(filesDir, filepath.Base(abs))
	dest := filepath.Join(filesDir, name)
	infoPath := filepath.Join(infoDir, name+".trashinfo")

	info := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		abs, time.Now().Format("2006-01-02T15:04:05"))
	if err := os.WriteFile(infoPath, []byte(info), 0o600); err != nil {
		return fmt.Errorf("purge: writing trashinfo: %w", err)
	}

	if err := os.Rename(abs, dest); err != nil {
		os.Remove(infoPath)
		return fmt.Errorf("purge: moving to trash: %w", err)
	}
	return nil
}

// trashEntryName returns a name unused in dir, appending a numeric suffix
// on collision per the spec's "unique filename" requirement.
func trashEntryName(dir, base string) string {
	candidate := base
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for i := 2; ; i++ {
		if _, err := os.Lstat(filepath.Join(dir, candidate)); os.IsNotExist(err) {
			return candidate
		}
		candidate = stem + "_" + strconv.Itoa(i) + ext
	}
}
