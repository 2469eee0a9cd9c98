package dedupe

import "testing"

func TestNewTree_SingletonIdentityGroupsPruned(t *testing.T) {
	universe := []*FileEntry{
		{Index: 0, Path: "a", Size: 10, Type: TypeRegular},
		{Index: 1, Path: "b", Size: 20, Type: TypeRegular}, // alone at size 20
		{Index: 2, Path: "c", Size: 10, Type: TypeRegular},
	}
	tree := NewTree(universe)

	leaves := tree.Leaves()
	if len(leaves) != 1 {
		t.Fatalf("Leaves() = %d, want 1 (the size-20 singleton must be pruned)", len(leaves))
	}

	members := tree.LeafEntries(leaves[0])
	if len(members) != 2 {
		t.Fatalf("leaf has %d members, want 2", len(members))
	}
}

func TestTree_SubdivideCollapsesEmptyParent(t *testing.T) {
	universe := entries(2, 10, TypeRegular)
	tree := NewTree(universe)

	leaves := tree.Leaves()
	if len(leaves) != 1 {
		t.Fatalf("Leaves() = %d, want 1", len(leaves))
	}
	id := leaves[0]

	members := tree.LeafEntries(id)
	// Regroup so every member lands in its own singleton group: this should
	// collapse the node (and, since it's the only child, its parent) away.
	groups := map[any][]*FileEntry{}
	for i, fe := range members {
		groups[i] = []*FileEntry{fe}
	}
	tree.Subdivide(id, StageSignature, groups, nil)

	if leaves := tree.Leaves(); len(leaves) != 0 {
		t.Errorf("Leaves() = %d after all-singleton subdivide, want 0", len(leaves))
	}
	if final := tree.FinalLeaves(); len(final) != 0 {
		t.Errorf("FinalLeaves() = %d after collapse, want 0", len(final))
	}
}

func TestTree_SubdivideKeepsSurvivingGroups(t *testing.T) {
	universe := entries(4, 10, TypeRegular)
	tree := NewTree(universe)
	id := tree.Leaves()[0]

	members := tree.LeafEntries(id)
	groups := map[any][]*FileEntry{
		"pair":   {members[0], members[1]},
		"single": {members[2]},
	}
	tree.Subdivide(id, StageSignature, groups, []*FileEntry{members[3]})

	leaves := tree.Leaves()
	if len(leaves) != 1 {
		t.Fatalf("Leaves() = %d, want 1 (singleton pruned, pair survives)", len(leaves))
	}
	if got := len(tree.LeafEntries(leaves[0])); got != 2 {
		t.Errorf("surviving leaf has %d members, want 2", got)
	}

	errs := tree.AllErrors()
	if got := len(errs[StageSignature]); got != 1 {
		t.Errorf("AllErrors()[StageSignature] = %d, want 1", got)
	}
}

func TestTree_DropClearsLeaf(t *testing.T) {
	universe := entries(2, 10, TypeRegular)
	tree := NewTree(universe)
	id := tree.Leaves()[0]

	tree.Drop(id, nil)

	if leaves := tree.Leaves(); len(leaves) != 0 {
		t.Errorf("Leaves() = %d after Drop(), want 0", len(leaves))
	}
}

func TestStage_String(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageIdent, "ident"},
		{StageMode, "mode"},
		{StageMtime, "mtime"},
		{StageName, "name"},
		{StageSignature, "signature"},
		{StageRule, "rule"},
		{StageHash, "hash"},
		{StageBinary, "binary"},
		{Stage(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", tt.stage, got, tt.want)
		}
	}
}
