package dedupe

import (
	"io"
	"math"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/finder-tools/dupfind/internal/devcache"
)

// sideSumValue is the side-sum rule refiner's sub-key (§4.5): a pair of
// xxhash digests over the head and tail chunk of a large file.
type sideSumValue struct {
	head uint64
	tail uint64
}

// sideSumPrecondition mirrors _siderule: only files at or above the
// large-file threshold benefit from sampling instead of a full hash, and
// symlinks (whose "content" is just target text) are never big enough to
// qualify in practice but are excluded explicitly to match the source.
func sideSumPrecondition(rep *FileEntry) bool {
	if rep.Size < bigFileSize {
		return false
	}
	return !rep.IsSymlink()
}

// chunkSize implements §4.5's chunk formula: ceil(size * rate / 100) / 2,
// snapped downward to a multiple of blockSize once it exceeds it.
func chunkSize(size, blockSize int64) int64 {
	chunk := int64(math.Ceil(float64(size)/100.0*sizeRatePercent)) / 2
	if blockSize < chunk {
		chunk -= chunk % blockSize
	}
	return chunk
}

// sideSumKeyFunc closes over a DeviceCache so each probe snaps its chunk
// size to the entry's device's optimal block size (§4.5, §4.8) rather
// than a fixed constant.
func sideSumKeyFunc(cache *devcache.Cache) func(*FileEntry) (any, error) {
	return func(fe *FileEntry) (any, error) {
		blockSize := int64(sideBlockSize)
		if fe.Dev != 0 {
			if info, err := cache.Get(fe.Path, fe.Dev); err == nil && info.BlockSize > 0 {
				blockSize = info.BlockSize
			}
		}
		chunk := chunkSize(fe.Size, blockSize)
		if chunk <= 0 {
			chunk = 1
		}

		f, err := os.Open(fe.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		head := make([]byte, chunk)
		hn, err := f.Read(head)
		if err != nil && hn == 0 {
			return nil, err
		}

		if _, err := f.Seek(-chunk, io.SeekEnd); err != nil {
			return nil, err
		}
		tail := make([]byte, chunk)
		tn, err := f.Read(tail)
		if err != nil && tn == 0 {
			return nil, err
		}

		return sideSumValue{
			head: xxhash.Sum64(head[:hn]),
			tail: xxhash.Sum64(tail[:tn]),
		}, nil
	}
}

func refineSideSum(tree *Tree, cache *devcache.Cache, onProbeError func(Stage, *FileEntry, error)) {
	refineIOWithErrors(tree, StageRule, 2, sideSumPrecondition, sideSumKeyFunc(cache), onProbeError)
}
