package dedupe

// Attribute refiners (§4.3): mode, mtime, and basename each further
// subdivide every surviving leaf by a pure function of already-known
// FileEntry fields, so unlike the I/O refiners below they never produce
// probe errors and never skip a leaf via a precondition.
//
// The spec calls out a "leaf of exactly two entries with differing
// values is dropped" special case; that falls out of the general
// group-then-prune-singletons rule without separate code; refineAttr
// only needs one generic path.

func refineMode(tree *Tree) {
	refineAttr(tree, StageMode, func(fe *FileEntry) any { return fe.Mode.Perm() })
}

func refineMtime(tree *Tree) {
	refineAttr(tree, StageMtime, func(fe *FileEntry) any { return fe.ModTime.UnixNano() })
}

func refineName(tree *Tree) {
	refineAttr(tree, StageName, func(fe *FileEntry) any { return fe.Name })
}

// refineAttr applies a key function across every current leaf of tree,
// replacing each with sub-buckets grouped on the key, per the refinement
// engine contract (§4.9).
func refineAttr(tree *Tree, stage Stage, key func(*FileEntry) any) {
	for _, id := range tree.Leaves() {
		members := tree.LeafEntries(id)
		groups := make(map[any][]*FileEntry, len(members))
		for _, fe := range members {
			k := key(fe)
			groups[k] = append(groups[k], fe)
		}
		tree.Subdivide(id, stage, groups, nil)
	}
}
