//go:build !windows

package walker

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
)

// platformIdentity extracts the device and inode numbers from a POSIX
// stat_t. The device number keys devcache's per-device lookups; the inode
// is recorded on the FileEntry but no stage reads it.
func platformIdentity(info os.FileInfo) (dev, ino uint64) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0
	}
	return uint64(st.Dev), uint64(st.Ino) //nolint:unconvert
}

// platformIsHidden follows POSIX convention: a dotfile is hidden.
// Grounded on original_source/duplicate/utils/fs/posix.py's is_hidden.
func platformIsHidden(path string, _ os.FileInfo) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

// systemWildcards is the union of original_source/duplicate/utils/fs/
// posix.py's WILDCARDS (editor swap files, FUSE mounts, NFS silly-rename
// artifacts, the Trash-$UID directories KDE/GNOME file managers leave on
// non-macOS POSIX systems) and osx.py's WILDCARDS (Finder/Spotlight/Time
// Machine bookkeeping files). The Python original splits these across two
// modules selected by sys.platform; this port keeps a single !windows
// build and merges both lists, since none of the osx.py patterns collide
// with a legitimate Linux filename and checking for both costs nothing.
var systemWildcards = []string{
	"*~", ".fuse_hidden*", ".directory", ".Trash-*", ".nfs*",
	"*.DS_Store", ".AppleDouble", ".LSOverride", "Icon", "._*",
	".DocumentRevisions-V100", ".fseventsd", ".Spotlight-V100",
	".TemporaryItems", ".Trashes", ".VolumeIcon.icns",
	".com.apple.timemachine.donotpresent", ".AppleDB", ".AppleDesktop",
	"Network Trash Folder", "Temporary Items", ".apdisk",
}

// isSystem reports whether path's basename matches one of systemWildcards.
// Grounded on original_source/duplicate/utils/fs/{posix,osx}.py's
// is_system, which compile their WILDCARDS tuple into a single fnmatch
// regex; doublestar.Match gives the same shell-glob semantics here.
func isSystem(path string, _ os.FileInfo) bool {
	base := filepath.Base(path)
	for _, pat := range systemWildcards {
		if ok, _ := doublestar.Match(pat, base); ok {
			return true
		}
	}
	return false
}
