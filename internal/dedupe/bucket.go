package dedupe

import "sync"

// Stage is a tagged variant identifying which discriminator produced a
// bucket node (design note §9: represent the discriminator set as a closed
// enum and drive refinement on the tag, rather than a dispatch table).
type Stage int

const (
	StageIdent Stage = iota
	StageMode
	StageMtime
	StageName
	StageSignature
	StageRule
	StageHash
	StageBinary
)

func (s Stage) String() string {
	switch s {
	case StageIdent:
		return "ident"
	case StageMode:
		return "mode"
	case StageMtime:
		return "mtime"
	case StageName:
		return "name"
	case StageSignature:
		return "signature"
	case StageRule:
		return "rule"
	case StageHash:
		return "hash"
	case StageBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// bucketNode is one node of the refinement tree. A node is either a leaf
// (entries != nil, children == nil) awaiting the next refiner, or
// subdivided (children != nil, entries == nil).
type bucketNode struct {
	stage    Stage
	parent   int // index into Tree.nodes; -1 for the root
	entries  []*FileEntry
	children []int
	errors   []*FileEntry
}

// Tree is an arena-indexed bucket tree (design note §9: "use an arena, not
// raw back-pointers"). Every node keeps its parent as an int index into
// nodes rather than a pointer, which makes the "collapse empties upward"
// rule a simple walk rather than pointer surgery. Index 0 is always the
// root; a nil entry marks a node removed by collapse.
type Tree struct {
	mu    sync.Mutex
	nodes []*bucketNode
}

// NewTree builds the initial bucket tree by partitioning universe on its
// identity key (§4.2, see partition.go), pruning singleton buckets.
func NewTree(universe []*FileEntry) *Tree {
	t := &Tree{nodes: []*bucketNode{{stage: StageIdent, parent: -1, entries: universe}}}
	t.Subdivide(0, StageIdent, identityGroups(universe), nil)
	return t
}

// Leaves returns the ids of all current leaf nodes (unsubdivided, with
// live entries) in arena order.
func (t *Tree) Leaves() []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]int, 0, len(t.nodes))
	for id, n := range t.nodes {
		if n != nil && n.children == nil && len(n.entries) > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// LeafEntries returns a snapshot copy of a leaf's member entries.
func (t *Tree) LeafEntries(id int) []*FileEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.nodes[id]
	out := make([]*FileEntry, len(n.entries))
	copy(out, n.entries)
	return out
}

// Subdivide replaces leaf id's entries with child leaf buckets built from
// groups (§4.9): groups of cardinality < 2 are pruned, errs is attached to
// the now-internal node, and the result collapses upward if it ends up
// empty and error-free.
func (t *Tree) Subdivide(id int, stage Stage, groups map[any][]*FileEntry, errs []*FileEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	parent := t.nodes[id]
	// The leaf becomes the replacement node this stage produced, so it
	// carries this stage's tag along with its error list.
	parent.stage = stage
	parent.entries = nil
	parent.errors = errs
	parent.children = []int{}

	for _, members := range groups {
		if len(members) < 2 {
			continue
		}
		childID := len(t.nodes)
		t.nodes = append(t.nodes, &bucketNode{stage: stage, parent: id, entries: members})
		parent.children = append(parent.children, childID)
	}

	t.collapseFrom(id)
}

// Drop clears a leaf's entries outright (used by the binary refiner, which
// is pairwise rather than key-grouping: a mismatched pair is pruned, not
// regrouped). Must be called with no lock held.
func (t *Tree) Drop(id int, errs []*FileEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.nodes[id]
	n.entries = nil
	n.errors = errs
	n.children = []int{}
	t.collapseFrom(id)
}

// collapseFrom walks upward from id, removing nodes that ended up with no
// children, no entries and no errors (§4.9's "collapse empties upward").
// Must be called with t.mu held.
func (t *Tree) collapseFrom(id int) {
	for id != -1 {
		n := t.nodes[id]
		if n == nil {
			return
		}
		empty := len(n.children) == 0 && len(n.entries) == 0 && len(n.errors) == 0
		if !empty {
			return
		}
		parent := n.parent
		t.nodes[id] = nil
		if parent == -1 {
			return
		}
		p := t.nodes[parent]
		p.children = removeInt(p.children, id)
		id = parent
	}
}

func removeInt(s []int, v int) []int {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// FinalLeaves returns every surviving leaf (live entries, unsubdivided)
// across the whole tree, used by the result shaper once all stages have
// run.
func (t *Tree) FinalLeaves() [][]*FileEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out [][]*FileEntry
	for _, n := range t.nodes {
		if n != nil && n.children == nil && len(n.entries) > 0 {
			members := make([]*FileEntry, len(n.entries))
			copy(members, n.entries)
			out = append(out, members)
		}
	}
	return out
}

// AllErrors collects every error-tagged node in the tree, annotated with
// the stage that produced it.
func (t *Tree) AllErrors() map[Stage][]*FileEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[Stage][]*FileEntry)
	for _, n := range t.nodes {
		if n != nil && len(n.errors) > 0 {
			out[n.stage] = append(out[n.stage], n.errors...)
		}
	}
	return out
}
