// Package walker enumerates candidate pointing files under a survey root
// and classifies the ones that cannot be read.
package walker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/petabyte-project/pointings/internal/config"
	pterrors "github.com/petabyte-project/pointings/internal/errors"
	"github.com/petabyte-project/pointings/internal/header"
	"github.com/petabyte-project/pointings/internal/schema"
)

// Result holds one survey's records and classified failures. Paths appear
// in discovery order; a path lands in at most one list.
type Result struct {
	Records        []schema.PointingRecord
	BrokenSymlinks []string
	EmptyFiles     []string
	EncodingErrors []string
	ToolErrors     []string
}

// Walker walks survey roots and hands validated candidates to the
// extractor.
type Walker struct {
	cfg      config.ToolConfig
	ignore   *config.IgnoreList
	ext      *header.Extractor
	strict   bool
	progress io.Writer
}

// New creates a Walker. progress receives one narration line per visited
// candidate; pass io.Discard to silence it. strict restores the historical
// whole-run abort when the header tool fails for any file.
func New(cfg config.ToolConfig, ignore *config.IgnoreList, ext *header.Extractor, strict bool, progress io.Writer) *Walker {
	if progress == nil {
		progress = io.Discard
	}
	return &Walker{cfg: cfg, ignore: ignore, ext: ext, strict: strict, progress: progress}
}

// Walk enumerates every candidate file under entry.Root and returns the
// survey's records and failure lists. An unreadable root or subdirectory
// fails the walk; per-file failures are classified and the walk continues.
func (w *Walker) Walk(ctx context.Context, entry config.SurveyEntry) (*Result, error) {
	result := &Result{}

	walkErr := filepath.WalkDir(entry.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !w.candidate(d.Name()) {
			return nil
		}

		if w.ignore.Ignored(path) {
			fmt.Fprintf(w.progress, "%s has been blacklisted and will not be read.\n", path)
			return nil
		}

		fmt.Fprintf(w.progress, "Searching %s.\n", path)

		// A symlink whose target is gone still shows up in the listing
		// but would crash the metadata tools.
		info, statErr := os.Stat(path)
		if statErr != nil {
			if d.Type()&fs.ModeSymlink != 0 {
				fmt.Fprintf(w.progress, "%s appears to be a broken symlink and will not be read.\n", path)
				result.BrokenSymlinks = append(result.BrokenSymlinks, path)
				return nil
			}
			return statErr
		}

		if info.Size() == 0 {
			fmt.Fprintf(w.progress, "%s has size zero and will not be read.\n", path)
			result.EmptyFiles = append(result.EmptyFiles, path)
			return nil
		}

		rec, extractErr := w.ext.Extract(ctx, path)
		if extractErr != nil {
			return w.classify(result, path, extractErr)
		}

		rec.Path = path
		rec.Survey = entry.Survey
		result.Records = append(result.Records, rec)
		return nil
	})

	if walkErr != nil {
		if _, ok := pterrors.AsPointingsError(walkErr); ok {
			return nil, walkErr
		}
		return nil, pterrors.WrapWithDetails(pterrors.EWalkFailed,
			"failed to walk survey root "+entry.Root, walkErr,
			map[string]string{"survey": entry.Survey, "path": entry.Root})
	}
	return result, nil
}

// candidate reports whether a filename is a science pointing worth
// reading: a recognized extension and no calibration marker.
func (w *Walker) candidate(name string) bool {
	if strings.Contains(name, w.cfg.CalMarker) {
		return false
	}
	for _, ext := range w.cfg.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// classify routes an extraction failure to its failure list, or aborts the
// walk for errors that are not per-file conditions.
func (w *Walker) classify(result *Result, path string, err error) error {
	var toolErr *header.ToolError
	switch {
	case errors.Is(err, header.ErrEncoding):
		fmt.Fprintf(w.progress, "%s caused %s to incorrectly encode and will not be read.\n",
			path, w.cfg.ReadfileBin)
		result.EncodingErrors = append(result.EncodingErrors, path)
		return nil
	case errors.As(err, &toolErr):
		if w.strict {
			return pterrors.WrapWithDetails(pterrors.EToolFailed,
				"header metadata tool failed in strict mode", err,
				map[string]string{
					"path":      path,
					"tool":      toolErr.Tool,
					"exit_code": fmt.Sprintf("%d", toolErr.ExitCode),
				})
		}
		fmt.Fprintf(w.progress, "%s could not be read by %s and will not be read.\n",
			path, toolErr.Tool)
		result.ToolErrors = append(result.ToolErrors, path)
		return nil
	default:
		return pterrors.Wrap(pterrors.EScratchSetup, "extraction failed for "+path, err)
	}
}
