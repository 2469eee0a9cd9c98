package purge

import (
	"os"
)

// remove deletes path, honoring trash (§4.11): a symlink is always
// unlinked directly (there's nothing meaningful to trash — it's just a
// pointer), a regular file goes to the platform trash when trash is true,
// otherwise it's unlinked.
func remove(path string, trash bool) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return os.Remove(path)
	}

	if trash {
		return trashFile(path)
	}
	return os.Remove(path)
}
