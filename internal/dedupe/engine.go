package dedupe

import (
	"context"
	"time"

	"github.com/finder-tools/dupfind/internal/config"
	"github.com/finder-tools/dupfind/internal/devcache"
	"github.com/finder-tools/dupfind/internal/logger"
)

// refineIO drives the generic refinement engine contract (§4.9) for
// stages whose key function can fail (I/O probes): signature and
// side-sum. Each current leaf of at least minCardinality whose
// representative entry satisfies precondition is regrouped by keyFn;
// entries whose probe errors are diverted to the replacement node's error
// list. Leaves that don't meet the cardinality floor or fail the
// precondition are left untouched, exactly as "raises skip" in the
// Python original.
func refineIO(tree *Tree, stage Stage, minCardinality int, precondition func(*FileEntry) bool, keyFn func(*FileEntry) (any, error)) {
	for _, id := range tree.Leaves() {
		members := tree.LeafEntries(id)
		if len(members) < minCardinality {
			continue
		}
		if !precondition(members[0]) {
			continue
		}

		groups := make(map[any][]*FileEntry, len(members))
		var errs []*FileEntry
		for _, fe := range members {
			k, err := keyFn(fe)
			if err != nil {
				errs = append(errs, fe)
				continue
			}
			groups[k] = append(groups[k], fe)
		}
		tree.Subdivide(id, stage, groups, errs)
	}
}

// run executes the full pipeline (§4.12's pipeline state machine) against
// an already-populated Tree, in place, notifying opts.OnError for every
// probe failure along the way.
func run(ctx context.Context, tree *Tree, opts config.Options, onProbeError func(stage Stage, fe *FileEntry, err error)) {
	if opts.CompareMode {
		refineMode(tree)
	}
	if opts.CompareMtime {
		refineMtime(tree)
	}
	if opts.CompareName {
		refineName(tree)
	}

	cache := devcache.New(devcache.DefaultCapacity)

	start := time.Now()
	refineSignature(tree, onProbeError)
	logger.Debug("signature refiner complete", "elapsed", time.Since(start), "leaves", len(tree.Leaves()))

	start = time.Now()
	refineSideSum(tree, cache, onProbeError)
	logger.Debug("side-sum refiner complete", "elapsed", time.Since(start), "leaves", len(tree.Leaves()))
	cache.Release()

	start = time.Now()
	refineHash(ctx, tree, opts, onProbeError)
	logger.Debug("hash refiner complete", "elapsed", time.Since(start), "leaves", len(tree.Leaves()))

	start = time.Now()
	refineBinary(tree, onProbeError)
	logger.Debug("binary refiner complete", "elapsed", time.Since(start), "leaves", len(tree.Leaves()))
}

// refineIOWithErrors wraps refineIO's keyFn so probe failures also reach
// the caller's on_error hook (§6/§7), not just the tree's error list.
func refineIOWithErrors(tree *Tree, stage Stage, minCardinality int, precondition func(*FileEntry) bool, keyFn func(*FileEntry) (any, error), onProbeError func(Stage, *FileEntry, error)) {
	wrapped := keyFn
	if onProbeError != nil {
		wrapped = func(fe *FileEntry) (any, error) {
			k, err := keyFn(fe)
			if err != nil {
				onProbeError(stage, fe, err)
			}
			return k, err
		}
	}
	refineIO(tree, stage, minCardinality, precondition, wrapped)
}
