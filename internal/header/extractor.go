// Package header extracts observational metadata from pointing files by
// invoking the external readfile and psredit tools and normalizing their
// textual output into the fixed report schema.
package header

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/petabyte-project/pointings/internal/config"
	"github.com/petabyte-project/pointings/internal/coords"
	"github.com/petabyte-project/pointings/internal/exec"
	"github.com/petabyte-project/pointings/internal/schema"
)

// maxStderrLen caps the stderr carried inside tool errors.
const maxStderrLen = 4096

// ErrEncoding marks a file whose tool output could not be decoded as text.
// The file is classified, not fatal.
var ErrEncoding = errors.New("tool output is not valid UTF-8")

// ToolError marks a file whose header-metadata tool invocation failed to
// run or exited non-zero. Callers decide whether this classifies the file
// or aborts the run (strict mode).
type ToolError struct {
	Tool     string
	Path     string
	ExitCode int
	Stderr   string
	Err      error // launch error, nil when the tool ran and exited non-zero
}

func (e *ToolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed to run for %s: %v", e.Tool, e.Path, e.Err)
	}
	trimmed := strings.TrimSpace(e.Stderr)
	if len(trimmed) > maxStderrLen {
		trimmed = trimmed[:maxStderrLen] + "..."
	}
	if trimmed == "" {
		return fmt.Sprintf("%s failed for %s (exit=%d)", e.Tool, e.Path, e.ExitCode)
	}
	return fmt.Sprintf("%s failed for %s (exit=%d): %s", e.Tool, e.Path, e.ExitCode, trimmed)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Extractor produces one PointingRecord per validated candidate file.
type Extractor struct {
	runner exec.CommandRunner
	cfg    config.ToolConfig
	logger *slog.Logger
}

// NewExtractor creates an Extractor. A nil logger falls back to
// slog.Default.
func NewExtractor(runner exec.CommandRunner, cfg config.ToolConfig, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{runner: runner, cfg: cfg, logger: logger}
}

// Extract runs the metadata tools for path and returns the populated
// record. Path and Survey are left for the caller to fill.
//
// Error returns: *ToolError when the header tool fails, ErrEncoding
// (wrapped) when tool output is not decodable text, and plain errors for
// scratch-directory setup failures. Whatever the external tools drop in
// their working directory is removed on every exit path: each extraction
// runs inside its own scratch directory.
func (e *Extractor) Extract(ctx context.Context, path string) (schema.PointingRecord, error) {
	rec := schema.NewRecord()
	rec.Beam = "0" // default when the header lists no beams

	scratch, err := os.MkdirTemp("", "pointings-scratch-")
	if err != nil {
		return rec, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	out, err := e.runTool(ctx, e.cfg.ReadfileBin, path, scratch)
	if err != nil {
		return rec, err
	}
	for _, line := range strings.Split(out, "\n") {
		applyHeaderLine(&rec, line)
	}

	// Filterbank files have no secondary-tool support; the observing
	// mode stays at the sentinel for them.
	if filepath.Ext(path) != ".fil" {
		modeOut, err := e.runTool(ctx, e.cfg.PsreditBin, path, scratch)
		switch {
		case errors.Is(err, ErrEncoding):
			return rec, err
		case err != nil:
			// Auxiliary metadata only; the record survives without it.
			e.logger.Warn("secondary metadata tool failed", "path", path, "error", err)
		default:
			if mode := extractObsMode(modeOut); mode != "" {
				rec.BackendMode = mode
			}
		}
	}

	// Sanity-check the coordinates the header reported. The record keeps
	// the tool's strings either way; this only warns the operator about
	// pointings that will not resolve to a sky position downstream.
	if rec.RA != schema.Missing {
		if _, err := coords.ParseRA(rec.RA); err != nil {
			e.logger.Warn("suspect right ascension in header", "path", path, "error", err)
		}
	}
	if rec.Dec != schema.Missing {
		if _, err := coords.ParseDec(rec.Dec); err != nil {
			e.logger.Warn("suspect declination in header", "path", path, "error", err)
		}
	}

	if missing := rec.MissingFields(); len(missing) > 0 {
		e.logger.Warn(fmt.Sprintf("%d fields have no values listed", len(missing)),
			"path", path, "fields", strings.Join(missing, ", "))
	}

	return rec, nil
}

// runTool invokes one metadata tool for path inside the scratch directory
// and returns its decoded stdout.
func (e *Extractor) runTool(ctx context.Context, tool, path, scratch string) (string, error) {
	result, err := e.runner.Run(ctx, tool, []string{path}, exec.RunOpts{Dir: scratch})
	if err != nil {
		return "", &ToolError{Tool: tool, Path: path, Err: err}
	}
	if result.ExitCode != 0 {
		return "", &ToolError{Tool: tool, Path: path, ExitCode: result.ExitCode, Stderr: result.Stderr}
	}
	if !utf8.ValidString(result.Stdout) {
		return "", fmt.Errorf("%s output for %s: %w", tool, path, ErrEncoding)
	}
	return result.Stdout, nil
}
