// Package report writes the pointing report and the failure-path lists.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/petabyte-project/pointings/internal/errors"
	"github.com/petabyte-project/pointings/internal/schema"
)

// FailureCategory names one per-file failure list. Term is the
// human-readable name used in narration; Suffix names the output file.
type FailureCategory struct {
	Term   string
	Suffix string
}

// Categories, in the order their files are written.
var (
	BrokenSymlinks = FailureCategory{Term: "broken symlinks", Suffix: "broken_symlinks"}
	EmptyFiles     = FailureCategory{Term: "empty files", Suffix: "empty_files"}
	EncodingErrors = FailureCategory{Term: "encoding errors", Suffix: "encoding_errors"}
	ToolErrors     = FailureCategory{Term: "tool errors", Suffix: "tool_errors"}
)

// WriteRecords writes the main report: one tab-joined row per record, in
// the given order, to <prefix>_output_list.txt.
func WriteRecords(prefix string, records []schema.PointingRecord, progress io.Writer) error {
	path := prefix + "_output_list.txt"
	fmt.Fprintf(progress, "Writing pointings to %s.\n", path)

	var sb strings.Builder
	for _, rec := range records {
		sb.WriteString(strings.Join(rec.Fields(), "\t"))
		sb.WriteString("\n")
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return errors.WrapWithDetails(errors.EReportWrite,
			"failed to write report file", err, map[string]string{"file": path})
	}
	return nil
}

// WriteFailures writes one failure category to <prefix>_<suffix>.txt, one
// path per line. An empty category writes no file at all - absence of the
// file is the signal - and is narrated instead.
func WriteFailures(prefix string, cat FailureCategory, paths []string, progress io.Writer) error {
	if len(paths) == 0 {
		fmt.Fprintf(progress, "No %s found.\n", cat.Term)
		return nil
	}

	path := prefix + "_" + cat.Suffix + ".txt"
	fmt.Fprintf(progress, "Writing %s to %s.\n", cat.Term, path)

	var sb strings.Builder
	for _, p := range paths {
		sb.WriteString(p)
		sb.WriteString("\n")
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return errors.WrapWithDetails(errors.EReportWrite,
			"failed to write "+cat.Term+" file", err, map[string]string{"file": path})
	}
	return nil
}
