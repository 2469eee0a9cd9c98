// Package dedupe's public surface: Find and Purge, the two operations
// spec.md §6 names, threaded with context.Context for cooperative
// cancellation the way mutagen-io and ivoronin-dupedog thread contexts
// through long scans.
package dedupe

import (
	"context"
	"fmt"
	"sort"

	"github.com/finder-tools/dupfind/internal/config"
	"github.com/finder-tools/dupfind/internal/logger"
	"github.com/finder-tools/dupfind/internal/purge"
	"github.com/finder-tools/dupfind/internal/walker"
)

// Find runs the full pipeline (enumerate → admit → partition → refine →
// shape) and returns the resulting ResultSet. It returns an error only when
// the walk cannot start (ErrNoPaths, an invalid include/exclude pattern, or
// a failure to create the walk's worker pool); every other failure is
// captured per-entry in the ResultSet's error lists (§7).
func Find(ctx context.Context, paths []string, opts config.Options) (ResultSet, error) {
	opts.Paths = paths

	entries, scanErrors, err := walker.Walk(ctx, opts)
	if err != nil {
		return ResultSet{}, fmt.Errorf("dedupe: %w", err)
	}

	tree := NewTree(entries)

	var probeErrors []ProbeError
	onProbeError := func(stage Stage, fe *FileEntry, probeErr error) {
		if opts.OnError != nil {
			opts.OnError(probeErr, fe.Path)
		}
		probeErrors = append(probeErrors, ProbeError{Path: fe.Path, Stage: stage, Err: probeErr})
	}

	var compareErrors []ProbeError
	run(ctx, tree, opts, func(stage Stage, fe *FileEntry, probeErr error) {
		if stage == StageBinary {
			if opts.OnError != nil {
				opts.OnError(probeErr, fe.Path)
			}
			compareErrors = append(compareErrors, ProbeError{Path: fe.Path, Stage: stage, Err: probeErr})
			return
		}
		onProbeError(stage, fe, probeErr)
	})

	classes := shape(tree)
	logger.Info("find complete", "classes", len(classes), "scan_errors", len(scanErrors), "probe_errors", len(probeErrors))

	result := ResultSet{
		Dups:        classes,
		ScanErrors:  scanErrors,
		ProbeErrors: probeErrors,
	}
	for _, ce := range compareErrors {
		result.ProbeErrors = append(result.ProbeErrors, ce)
	}
	sort.Slice(result.ProbeErrors, func(i, j int) bool { return result.ProbeErrors[i].Path < result.ProbeErrors[j].Path })

	if opts.Fingerprint {
		result.Fingerprints = make([]string, len(classes))
		for i, c := range classes {
			result.Fingerprints[i] = fingerprintClass(c)
		}
	}

	return result, nil
}

// Purge runs Find and then deletes every class member but one (§4.11),
// honoring onDelete and opts.OnError, routing deletions through trash
// integration when trash is true.
func Purge(ctx context.Context, paths []string, opts config.Options, trash bool, onDelete func(string) error) (ResultSet, error) {
	result, err := Find(ctx, paths, opts)
	if err != nil {
		return result, err
	}

	classes := make([]purge.Class, len(result.Dups))
	for i, c := range result.Dups {
		entries := make([]purge.Entry, len(c.Entries))
		for j, fe := range c.Entries {
			entries[j] = purge.Entry{Path: fe.Path, Index: fe.Index, ModTime: fe.ModTime}
		}
		classes[i] = purge.Class{Entries: entries}
	}

	deleted, deleteErrors := purge.Run(classes, trash, onDelete, opts.OnError)
	result.Deleted = deleted
	for _, de := range deleteErrors {
		result.DeleteErrors = append(result.DeleteErrors, DeleteError{Path: de.Path, Err: de.Err})
	}

	return result, nil
}
