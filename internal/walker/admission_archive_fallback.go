//go:build !windows && !darwin

package walker

import "os"

// isArchived has no stat-level equivalent outside Windows and the BSD
// family (no archive flag in struct stat); always false. Grounded on
// original_source/duplicate/utils/fs/posix.py's has_archive_attribute,
// which catches the AttributeError raised on platforms without st_flags
// and falls back to False.
func isArchived(_ string, _ os.FileInfo) bool {
	return false
}
