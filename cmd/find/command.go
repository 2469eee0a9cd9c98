// Package find provides the "find" command for locating byte-identical
// duplicate files across one or more filesystem roots.
package find

import (
	"context"
	"fmt"
	"time"

	"github.com/finder-tools/dupfind/internal/config"
	"github.com/finder-tools/dupfind/internal/dedupe"
	"github.com/finder-tools/dupfind/internal/logger"

	"github.com/finder-tools/dupfind/cmd"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find [paths...]",
	Short: "Find byte-identical duplicate files under one or more paths",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.With("command", "find", "paths", args)

		opts, err := optionsFromFlags(cmd)
		if err != nil {
			return err
		}

		log.Info("starting find")
		start := time.Now()

		result, err := dedupe.Find(context.Background(), args, opts)
		if err != nil {
			log.Error("find failed", "error", err, "duration", time.Since(start))
			return err
		}

		duration := time.Since(start)
		log.Info("find complete",
			"duration", duration,
			"classes", len(result.Dups),
			"scan_errors", len(result.ScanErrors),
			"probe_errors", len(result.ProbeErrors),
		)

		out := cmd.OutOrStdout()
		for i, class := range result.Dups {
			if _, err := fmt.Fprintf(out, "class %d (%d files):\n", i+1, len(class.Paths)); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			for _, p := range class.Paths {
				if _, err := fmt.Fprintf(out, "  %s\n", p); err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
			}
			if len(result.Fingerprints) > i {
				if _, err := fmt.Fprintf(out, "  fingerprint: %s\n", result.Fingerprints[i]); err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
			}
		}
		if len(result.Dups) == 0 {
			if _, err := fmt.Fprintln(out, "no duplicates found"); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}

		return nil
	},
}

// optionsFromFlags assembles config.Options from find's flag set, the
// same hand-read-each-flag style as the teacher's hash command.
func optionsFromFlags(c *cobra.Command) (config.Options, error) {
	minSize, err := c.Flags().GetInt64("min-size")
	if err != nil {
		return config.Options{}, err
	}
	maxSize, err := c.Flags().GetInt64("max-size")
	if err != nil {
		return config.Options{}, err
	}
	include, err := c.Flags().GetStringArray("include")
	if err != nil {
		return config.Options{}, err
	}
	exclude, err := c.Flags().GetStringArray("exclude")
	if err != nil {
		return config.Options{}, err
	}
	compareName, _ := c.Flags().GetBool("compare-name")
	compareMtime, _ := c.Flags().GetBool("compare-mtime")
	compareMode, _ := c.Flags().GetBool("compare-mode")
	recursive, _ := c.Flags().GetBool("recursive")
	followLinks, _ := c.Flags().GetBool("follow-links")
	scanLinks, _ := c.Flags().GetBool("scan-links")
	scanEmpties, _ := c.Flags().GetBool("scan-empties")
	scanSystem, _ := c.Flags().GetBool("scan-system")
	scanArchived, _ := c.Flags().GetBool("scan-archived")
	scanHidden, _ := c.Flags().GetBool("scan-hidden")
	maxWorkers, _ := c.Flags().GetInt("max-workers")
	fingerprint, _ := c.Flags().GetBool("fingerprint")

	opts := config.New(nil,
		config.WithSizeBounds(minSize, maxSize),
		config.WithGlobs(include, exclude),
		config.WithAttributeRefiners(compareName, compareMtime, compareMode),
		config.WithWalkPolicy(recursive, followLinks, scanLinks, scanEmpties),
		config.WithAttributePolicy(scanSystem, scanArchived, scanHidden),
		config.WithMaxWorkers(maxWorkers),
		config.WithFingerprint(fingerprint),
	)
	return opts, nil
}

func init() {
	findCmd.Flags().Int64("min-size", config.DefaultMinSize, "Minimum file size in bytes to consider")
	findCmd.Flags().Int64("max-size", config.DefaultMaxSize, "Maximum file size in bytes to consider")
	findCmd.Flags().StringArray("include", nil, "Include glob pattern (can be specified multiple times)")
	findCmd.Flags().StringArrayP("exclude", "e", nil, "Exclude glob pattern (can be specified multiple times)")
	findCmd.Flags().Bool("compare-name", false, "Also require matching basenames")
	findCmd.Flags().Bool("compare-mtime", false, "Also require matching modification times")
	findCmd.Flags().Bool("compare-mode", false, "Also require matching permission modes")
	findCmd.Flags().Bool("recursive", true, "Descend into subdirectories")
	findCmd.Flags().Bool("follow-links", false, "Follow symlinked directories")
	findCmd.Flags().Bool("scan-links", false, "Include file symlinks as candidates")
	findCmd.Flags().Bool("scan-empties", false, "Include zero-byte files")
	findCmd.Flags().Bool("scan-system", true, "Include system files")
	findCmd.Flags().Bool("scan-archived", true, "Include archived files")
	findCmd.Flags().Bool("scan-hidden", true, "Include hidden files")
	findCmd.Flags().Int("max-workers", 0, "Bound on concurrent hash-refiner workers (0 = runtime.NumCPU())")
	findCmd.Flags().Bool("fingerprint", false, "Compute a BLAKE3 fingerprint per duplicate class")

	cmd.Register(findCmd)
}
