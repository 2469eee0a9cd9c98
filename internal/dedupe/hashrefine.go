package dedupe

import (
	"context"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/panjf2000/ants/v2"

	"github.com/finder-tools/dupfind/internal/config"
	"github.com/finder-tools/dupfind/internal/devcache"
	"github.com/finder-tools/dupfind/internal/directio"
)

// hashValue is the full-file streaming hash refiner's sub-key (§4.6).
type hashValue uint64

// hashPrecondition mirrors _hashrule: only leaves with three or more
// surviving candidates bother with a full hash — a cardinality-2 leaf
// skips straight to the binary refiner, since hashing both sides and
// comparing hashes buys nothing over comparing bytes directly.
func hashPrecondition(members []*FileEntry) bool {
	if len(members) < 3 {
		return false
	}
	return members[0].Size != 0
}

// hashBuffer picks the streaming read buffer size (§4.6): the larger of
// the device block size and hashBlockSize, rounded down to a multiple of
// the smaller of the two.
func hashBuffer(blockSize int64) []byte {
	big, small := blockSize, int64(hashBlockSize)
	if small > big {
		big, small = small, big
	}
	n := big - big%small
	if n <= 0 {
		n = small
	}
	return make([]byte, n)
}

func hashFile(fe *FileEntry, blockSize int64) (hashValue, error) {
	if fe.IsSymlink() {
		target, err := os.Readlink(fe.Path)
		if err != nil {
			return 0, err
		}
		return hashValue(xxhash.Sum64String(target)), nil
	}

	r, err := directio.Open(fe.Path, true)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	digest := xxhash.New()
	buf := hashBuffer(blockSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			digest.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	return hashValue(digest.Sum64()), nil
}

// refineHash drives the hash refiner concurrently: a bounded ants.Pool
// fans out one task per member of a leaf, so a leaf's members are hashed
// in parallel; leaves are processed one after another, each finishing
// before the next starts, and §4.9's tree mutation stays serialized
// inside Tree.Subdivide.
func refineHash(ctx context.Context, tree *Tree, opts config.Options, onProbeError func(Stage, *FileEntry, error)) {
	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		pool = nil
	} else {
		defer pool.Release()
	}

	cache := devcache.New(devcache.DefaultCapacity)
	defer cache.Release()

	for _, id := range tree.Leaves() {
		members := tree.LeafEntries(id)
		if !hashPrecondition(members) {
			continue
		}
		if ctx.Err() != nil {
			return
		}

		type outcome struct {
			fe  *FileEntry
			key hashValue
			err error
		}
		results := make([]outcome, len(members))

		var wg sync.WaitGroup
		for i, fe := range members {
			i, fe := i, fe
			wg.Add(1)
			task := func() {
				defer wg.Done()
				blockSize := int64(hashBlockSize)
				if fe.Dev != 0 {
					if info, err := cache.Get(fe.Path, fe.Dev); err == nil && info.BlockSize > 0 {
						blockSize = info.BlockSize
					}
				}
				k, err := hashFile(fe, blockSize)
				results[i] = outcome{fe: fe, key: k, err: err}
			}
			if pool == nil {
				task()
				continue
			}
			if submitErr := pool.Submit(task); submitErr != nil {
				task()
			}
		}
		wg.Wait()

		groups := make(map[any][]*FileEntry, len(members))
		var errs []*FileEntry
		for _, r := range results {
			if r.err != nil {
				if onProbeError != nil {
					onProbeError(StageHash, r.fe, r.err)
				}
				errs = append(errs, r.fe)
				continue
			}
			groups[r.key] = append(groups[r.key], r.fe)
		}
		tree.Subdivide(id, StageHash, groups, errs)
	}
}
