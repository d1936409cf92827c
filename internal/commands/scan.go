// Package commands implements the pointings CLI commands.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/petabyte-project/pointings/internal/config"
	"github.com/petabyte-project/pointings/internal/errors"
	"github.com/petabyte-project/pointings/internal/exec"
	"github.com/petabyte-project/pointings/internal/header"
	"github.com/petabyte-project/pointings/internal/report"
	"github.com/petabyte-project/pointings/internal/schema"
	"github.com/petabyte-project/pointings/internal/walker"
)

// ScanOpts holds options for the scan command.
type ScanOpts struct {
	// DirListPath is the tab-separated survey directory list.
	DirListPath string

	// OutputPrefix prefixes the report and failure files.
	OutputPrefix string

	// IgnorePath is the optional ignore-list file. Empty means nothing
	// is ignored.
	IgnorePath string

	// ConfigPath is the optional YAML tool config. Empty means defaults.
	ConfigPath string

	// Strict aborts the whole run when the header-metadata tool fails
	// for any file, instead of classifying the file as a tool error.
	Strict bool
}

// Scan walks every survey in the directory list, extracts pointing
// metadata from each candidate file, and writes the report plus the
// failure lists. Surveys are processed in sorted (survey, root) order;
// one file is processed end-to-end before the next begins.
func Scan(ctx context.Context, cr exec.CommandRunner, opts ScanOpts, stdout, stderr io.Writer) error {
	if opts.DirListPath == "" {
		return errors.New(errors.EUsage, "directory list path is required")
	}
	if opts.OutputPrefix == "" {
		return errors.New(errors.EUsage, "output prefix is required")
	}

	fmt.Fprintf(stdout, "Reading directory list from %s.\n", opts.DirListPath)
	entries, err := config.LoadDirList(opts.DirListPath)
	if err != nil {
		return err
	}

	ignore := config.EmptyIgnoreList()
	if opts.IgnorePath != "" {
		fmt.Fprintf(stdout, "Reading directories and files to ignore from %s.\n", opts.IgnorePath)
		ignore, err = config.LoadIgnoreList(opts.IgnorePath)
		if err != nil {
			return err
		}
	}

	cfg := config.DefaultToolConfig()
	if opts.ConfigPath != "" {
		cfg, err = config.LoadToolConfig(opts.ConfigPath)
		if err != nil {
			return err
		}
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	ext := header.NewExtractor(cr, cfg, logger)
	w := walker.New(cfg, ignore, ext, opts.Strict, stdout)

	var records []schema.PointingRecord
	var brokenSymlinks, emptyFiles, encodingErrors, toolErrors []string

	for _, entry := range entries {
		fmt.Fprintf(stdout, "Searching for pointings from %s in %s.\n", entry.Survey, entry.Root)
		result, err := w.Walk(ctx, entry)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%d %s pointings found!\n", len(result.Records), entry.Survey)

		records = append(records, result.Records...)
		brokenSymlinks = append(brokenSymlinks, result.BrokenSymlinks...)
		emptyFiles = append(emptyFiles, result.EmptyFiles...)
		encodingErrors = append(encodingErrors, result.EncodingErrors...)
		toolErrors = append(toolErrors, result.ToolErrors...)
	}
	fmt.Fprintf(stdout, "%d total pointings found!\n", len(records))

	if err := report.WriteRecords(opts.OutputPrefix, records, stdout); err != nil {
		return err
	}
	failures := []struct {
		cat   report.FailureCategory
		paths []string
	}{
		{report.BrokenSymlinks, brokenSymlinks},
		{report.EmptyFiles, emptyFiles},
		{report.EncodingErrors, encodingErrors},
		{report.ToolErrors, toolErrors},
	}
	for _, f := range failures {
		if err := report.WriteFailures(opts.OutputPrefix, f.cat, f.paths, stdout); err != nil {
			return err
		}
	}
	return nil
}
