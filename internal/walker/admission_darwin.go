//go:build darwin

package walker

import (
	"os"

	"golang.org/x/sys/unix"
)

// isArchived checks the BSD st_flags SF_ARCHIVED bit via an lstat syscall.
// Grounded on original_source/duplicate/utils/fs/posix.py's
// has_archive_attribute (the function osx.py imports unchanged for
// is_archived): `not (st_flags & SF_ARCHIVED)`, i.e. the flag is set on a
// file once it has been backed up and cleared again when it changes, so
// "archived" here means "modified since the last backup", the same sense
// as Windows' FILE_ATTRIBUTE_ARCHIVE.
func isArchived(path string, _ os.FileInfo) bool {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return false
	}
	return st.Flags&unix.SF_ARCHIVED == 0
}
