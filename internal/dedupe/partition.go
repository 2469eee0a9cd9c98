package dedupe

// identityGroups implements the partitioner (§4.2): the primary bucketing
// pass, keyed on (file-type-bits, size). Everything downstream only ever
// further subdivides what this produces; it never re-groups across an
// identity boundary.
func identityGroups(universe []*FileEntry) map[any][]*FileEntry {
	groups := make(map[any][]*FileEntry, len(universe))
	for _, fe := range universe {
		k := fe.IdentityKey()
		groups[k] = append(groups[k], fe)
	}
	return groups
}
