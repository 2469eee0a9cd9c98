// Package purge provides the "purge" command: finds duplicate files and
// deletes every class member but one.
package purge

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

var purgeCmd = &cobra.Command{
	Use:   "purge [paths...]",
	Short: "Find and delete byte-identical duplicate files, keeping one per class",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.With("command", "purge", "paths", args)

		opts, err := findFlagsToOptions(cmd)
		if err != nil {
			return err
		}
		trash, _ := cmd.Flags().GetBool("trash")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		if dryRun {
			result, err := dedupe.Find(context.Background(), args, opts)
			if err != nil {
				return err
			}
			return reportDryRun(cmd, result)
		}

		log.Info("starting purge", "trash", trash)
		start := time.Now()

		result, err := dedupe.Purge(context.Background(), args, opts, trash, nil)
		if err != nil {
			log.Error("purge failed", "error", err, "duration", time.Since(start))
			return err
		}

		log.Info("purge complete",
			"duration", time.Since(start),
			"classes", len(result.Dups),
			"deleted", len(result.Deleted),
			"delete_errors", len(result.DeleteErrors),
		)

		out := cmd.OutOrStdout()
		for _, p := range result.Deleted {
			if _, err := fmt.Fprintf(out, "deleted %s\n", p); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}
		for _, de := range result.DeleteErrors {
			if _, err := fmt.Fprintf(out, "failed to delete %s: %v\n", de.Path, de.Err); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}

		return nil
	},
}

func reportDryRun(c *cobra.Command, result dedupe.ResultSet) error {
	out := c.OutOrStdout()
	for _, class := range result.Dups {
		if len(class.Paths) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(out, "would keep %s, delete:\n", class.Paths[0]); err != nil {
			return err
		}
		for _, p := range class.Paths[1:] {
			if _, err := fmt.Fprintf(out, "  %s\n", p); err != nil {
				return err
			}
		}
	}
	return nil
}

func findFlagsToOptions(c *cobra.Command) (config.Options, error) {
	minSize, err := c.Flags().GetInt64("min-size")
	if err != nil {
		return config.Options{}, err
	}
	maxSize, err := c.Flags().GetInt64("max-size")
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

	return config.New(nil,
		config.WithSizeBounds(minSize, maxSize),
		config.WithGlobs(nil, exclude),
		config.WithAttributeRefiners(compareName, compareMtime, compareMode),
	), nil
}

func init() {
	purgeCmd.Flags().Int64("min-size", config.DefaultMinSize, "Minimum file size in bytes to consider")
	purgeCmd.Flags().Int64("max-size", config.DefaultMaxSize, "Maximum file size in bytes to consider")
	purgeCmd.Flags().StringArrayP("exclude", "e", nil, "Exclude glob pattern (can be specified multiple times)")
	purgeCmd.Flags().Bool("compare-name", false, "Also require matching basenames")
	purgeCmd.Flags().Bool("compare-mtime", false, "Also require matching modification times")
	purgeCmd.Flags().Bool("compare-mode", false, "Also require matching permission modes")
	purgeCmd.Flags().Bool("trash", false, "Send deleted files to the platform trash instead of unlinking")
	purgeCmd.Flags().Bool("dry-run", false, "Report what would be deleted without deleting anything")

	cmd.Register(purgeCmd)
}
