package dedupe

import "sort"

// Class is one confirmed equivalence class: two or more paths whose
// contents (and, if requested, name/mtime/mode) are identical. Entries
// parallels Paths and carries the metadata purge needs for keep-selection
// ordering (index, mtime) that the plain path list doesn't.
type Class struct {
	Paths   []string
	Entries []*FileEntry
}

// ResultSet is the flattened outcome of a pipeline run (§3, §7).
type ResultSet struct {
	Dups         []Class
	Deleted      []string
	ScanErrors   []ScanError
	ProbeErrors  []ProbeError
	DeleteErrors []DeleteError

	// Fingerprints holds one BLAKE3 digest per entry in Dups, in the
	// same order, when config.Options.Fingerprint is set (§2's
	// supplemental class-fingerprint feature).
	Fingerprints []string
}

// shape implements the result shaper (§4.10): walk every surviving leaf,
// order members by (index, path), and order classes by descending
// cardinality, (index, path) of the first member breaking ties so the
// ordering is a pure, deterministic function of the tree's contents.
func shape(tree *Tree) []Class {
	leaves := tree.FinalLeaves()
	classes := make([]Class, 0, len(leaves))

	for _, members := range leaves {
		sorted := make([]*FileEntry, len(members))
		copy(sorted, members)
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].Index != sorted[j].Index {
				return sorted[i].Index < sorted[j].Index
			}
			return sorted[i].Path < sorted[j].Path
		})

		paths := make([]string, len(sorted))
		for i, fe := range sorted {
			paths[i] = fe.Path
		}
		classes = append(classes, Class{Paths: paths, Entries: sorted})
	}

	sort.SliceStable(classes, func(i, j int) bool {
		if len(classes[i].Paths) != len(classes[j].Paths) {
			return len(classes[i].Paths) > len(classes[j].Paths)
		}
		a, b := classes[i].Entries[0], classes[j].Entries[0]
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return a.Path < b.Path
	})

	return classes
}
