// Package walker implements the enumerator and admission filter (spec §4.1):
// it drains user-supplied paths into a flat, admitted stream of
// dedupe.FileEntry records. Filesystem walking concurrency is grounded on
// the teacher's merkle.Engine.hashPath (visited-set cycle guard,
// symlink-as-leaf treatment) and on the dupedog scanner/find-duplicates
// concurrentWalkDir pattern (bounded goroutine fan-out, single collector).
package walker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/finder-tools/dupfind/internal/config"
	"github.com/finder-tools/dupfind/internal/dedupe"
	"github.com/finder-tools/dupfind/internal/logger"
	"github.com/panjf2000/ants/v2"
)

// rawEntry is a pre-index admitted entry, produced concurrently by the
// walk. Entries are sorted and assigned their monotonic Index in a single
// final pass (§5: "index assigned ... in a single-threaded pass before any
// refinement begins").
type rawEntry struct {
	path string
	name string
	dir  string
	mode os.FileMode
	typ  dedupe.TypeBits
	dev  uint64
	ino  uint64
	size int64
	mod  int64 // UnixNano
}

// Walk enumerates opts.Paths, admits entries per §4.1, and returns a
// deterministically ordered, indexed FileEntry stream plus the scan
// errors collected along the way.
func Walk(ctx context.Context, opts config.Options) ([]*dedupe.FileEntry, []dedupe.ScanError, error) {
	if len(opts.Paths) == 0 {
		return nil, nil, dedupe.ErrNoPaths
	}

	matcher, err := newGlobMatcher(opts.Include, opts.Exclude)
	if err != nil {
		return nil, nil, fmt.Errorf("walker: compiling glob patterns: %w", err)
	}

	onError := opts.OnError
	if onError == nil {
		onError = func(error, string) {}
	}

	var (
		mu         sync.Mutex
		collected  []rawEntry
		scanErrors []dedupe.ScanError
	)
	recordError := func(err error, path string) {
		onError(err, path)
		mu.Lock()
		scanErrors = append(scanErrors, dedupe.ScanError{Path: path, Err: err})
		mu.Unlock()
	}
	admit := func(re rawEntry) {
		mu.Lock()
		collected = append(collected, re)
		mu.Unlock()
	}

	pool, err := ants.NewPool(maxWalkWorkers())
	if err != nil {
		return nil, nil, fmt.Errorf("walker: creating worker pool: %w", err)
	}
	defer pool.Release()

	visited := &sync.Map{}
	var wg sync.WaitGroup

	for _, p := range opts.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			recordError(err, p)
			continue
		}
		wg.Add(1)
		root := abs
		submitErr := pool.Submit(func() {
			defer wg.Done()
			walkOne(ctx, root, opts, matcher, visited, admit, recordError, pool, &wg)
		})
		if submitErr != nil {
			wg.Done()
			walkOne(ctx, root, opts, matcher, visited, admit, recordError, pool, &wg)
		}
	}
	wg.Wait()

	sort.Slice(collected, func(i, j int) bool { return collected[i].path < collected[j].path })

	entries := make([]*dedupe.FileEntry, len(collected))
	for i, re := range collected {
		entries[i] = &dedupe.FileEntry{
			Index:   int64(i),
			Path:    re.path,
			Name:    re.name,
			Dir:     re.dir,
			Mode:    re.mode,
			Type:    re.typ,
			Dev:     re.dev,
			Ino:     re.ino,
			Size:    re.size,
			ModTime: unixNanoTime(re.mod),
		}
	}

	logger.Info("walk complete", "admitted", len(entries), "scan_errors", len(scanErrors))
	return entries, scanErrors, nil
}

// walkOne processes a single path: a directory's entries are walked
// concurrently, with subdirectories descended only when opts.Recursive; a
// file or symlink is admitted directly.
func walkOne(
	ctx context.Context,
	path string,
	opts config.Options,
	matcher *globMatcher,
	visited *sync.Map,
	admit func(rawEntry),
	recordError func(error, string),
	pool *ants.Pool,
	parentWG *sync.WaitGroup,
) {
	if ctx.Err() != nil {
		return
	}

	if _, seen := visited.LoadOrStore(path, true); seen {
		return
	}

	info, err := os.Lstat(path)
	if err != nil {
		recordError(err, path)
		return
	}

	if info.Mode()&os.ModeSymlink != 0 {
		target, err := filepath.EvalSymlinks(path)
		if err != nil {
			recordError(err, path)
			return
		}
		targetInfo, err := os.Stat(target)
		if err != nil {
			recordError(err, path)
			return
		}
		if targetInfo.IsDir() {
			if opts.FollowLinks {
				walkOne(ctx, target, opts, matcher, visited, admit, recordError, pool, parentWG)
			}
			return
		}
		if opts.ScanLinks {
			admitFile(path, info, dedupe.TypeSymlink, opts, matcher, admit, recordError)
		}
		return
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			recordError(err, path)
			return
		}
		for _, de := range entries {
			if de.IsDir() && !opts.Recursive {
				continue
			}
			childPath := filepath.Join(path, de.Name())
			parentWG.Add(1)
			submitErr := pool.Submit(func() {
				defer parentWG.Done()
				walkOne(ctx, childPath, opts, matcher, visited, admit, recordError, pool, parentWG)
			})
			if submitErr != nil {
				parentWG.Done()
				walkOne(ctx, childPath, opts, matcher, visited, admit, recordError, pool, parentWG)
			}
		}
		return
	}

	if info.Mode().IsRegular() {
		admitFile(path, info, dedupe.TypeRegular, opts, matcher, admit, recordError)
	}
}

func admitFile(
	path string,
	info os.FileInfo,
	typ dedupe.TypeBits,
	opts config.Options,
	matcher *globMatcher,
	admit func(rawEntry),
	recordError func(error, string),
) {
	if !admissionOK(path, info, typ, opts, matcher) {
		return
	}

	dev, ino := platformIdentity(info)
	admit(rawEntry{
		path: path,
		name: filepath.Base(path),
		dir:  filepath.Dir(path),
		mode: info.Mode(),
		typ:  typ,
		dev:  dev,
		ino:  ino,
		size: info.Size(),
		mod:  info.ModTime().UnixNano(),
	})
}

func maxWalkWorkers() int {
	n := 32
	return n
}
