package dedupe

import (
	"bytes"
	"io"
	"os"
)

const binaryCompareBuf = 64 << 10

// refineBinary implements §4.7: every surviving leaf of cardinality 2 gets
// a shallow-false byte-for-byte compare; mismatches are pruned. Leaves
// with cardinality >= 3 reach here only when the hash refiner confirmed
// every member has an identical full-file hash (§4.6's precondition), and
// are accepted as confirmed classes without further compare — mirroring
// original_source/duplicate/core.py's _binaryfilter, which unpacks
// `file0, file1 = duplist` and silently skips (leaves untouched) any
// group that isn't exactly a pair. Zero-size leaves are likewise left
// untouched: two empty files are trivially identical.
func refineBinary(tree *Tree, onProbeError func(Stage, *FileEntry, error)) {
	for _, id := range tree.Leaves() {
		members := tree.LeafEntries(id)
		if len(members) != 2 {
			continue
		}
		if members[0].Size == 0 {
			continue
		}

		equal, err := compareFiles(members[0].Path, members[1].Path)
		if err != nil {
			if onProbeError != nil {
				onProbeError(StageBinary, members[0], err)
			}
			tree.Drop(id, members)
			continue
		}
		if !equal {
			tree.Drop(id, nil)
		}
	}
}

// compareFiles is a shallow-false compare: it always reads and compares
// content, never trusting size/mtime stat shortcuts (the refiners ahead
// of it already established equal size).
func compareFiles(a, b string) (bool, error) {
	fa, err := os.Open(a)
	if err != nil {
		return false, err
	}
	defer fa.Close()

	fb, err := os.Open(b)
	if err != nil {
		return false, err
	}
	defer fb.Close()

	bufA := make([]byte, binaryCompareBuf)
	bufB := make([]byte, binaryCompareBuf)
	for {
		na, erra := io.ReadFull(fa, bufA)
		nb, errb := io.ReadFull(fb, bufB)
		if na != nb || !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		aDone := erra == io.EOF || erra == io.ErrUnexpectedEOF
		bDone := errb == io.EOF || errb == io.ErrUnexpectedEOF
		if aDone && bDone {
			return true, nil
		}
		if aDone != bDone {
			return false, nil
		}
		if erra != nil {
			return false, erra
		}
		if errb != nil {
			return false, errb
		}
	}
}
