package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	err := New(EDirList, "directory list not found")
	want := "E_DIR_LIST: directory list not found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := fmt.Errorf("open failed")
	err := Wrap(EToolFailed, "readfile did not run", cause)

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if GetCode(err) != EToolFailed {
		t.Errorf("GetCode = %q, want %q", GetCode(err), EToolFailed)
	}
}

func TestGetCode_NonPointingsError(t *testing.T) {
	if code := GetCode(fmt.Errorf("plain error")); code != "" {
		t.Errorf("GetCode on plain error = %q, want empty", code)
	}
	if code := GetCode(nil); code != "" {
		t.Errorf("GetCode on nil = %q, want empty", code)
	}
}

func TestGetCode_DeepWrap(t *testing.T) {
	inner := New(EIgnoreList, "bad row")
	outer := fmt.Errorf("loading config: %w", inner)
	if GetCode(outer) != EIgnoreList {
		t.Errorf("GetCode through fmt wrap = %q, want %q", GetCode(outer), EIgnoreList)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"usage", New(EUsage, "missing args"), 2},
		{"config", New(EDirList, "bad file"), 1},
		{"plain", fmt.Errorf("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDetailsCopied(t *testing.T) {
	details := map[string]string{"path": "/data/a/obs1.fits"}
	err := NewWithDetails(EToolFailed, "readfile failed", details)
	details["path"] = "mutated"

	pe, ok := AsPointingsError(err)
	if !ok {
		t.Fatal("expected PointingsError")
	}
	if pe.Details["path"] != "/data/a/obs1.fits" {
		t.Errorf("details not defensively copied: %q", pe.Details["path"])
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, New(EWalkFailed, "cannot read /data/a"))

	got := buf.String()
	if !strings.Contains(got, "error_code: E_WALK_FAILED") {
		t.Errorf("missing error_code line: %q", got)
	}
	if !strings.Contains(got, "cannot read /data/a") {
		t.Errorf("missing message line: %q", got)
	}
}

func TestFormat_ContextAndHint(t *testing.T) {
	err := NewWithDetails(EToolFailed, "readfile failed", map[string]string{
		"path":      "/data/a/obs1.fits",
		"tool":      "readfile",
		"exit_code": "127",
		"hint":      "check that readfile is on PATH",
	})

	got := Format(err, PrintOptions{})
	for _, want := range []string{
		"error_code: E_TOOL_FAILED",
		"path: /data/a/obs1.fits",
		"tool: readfile",
		"exit_code: 127",
		"hint: check that readfile is on PATH",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Format output missing %q:\n%s", want, got)
		}
	}
}

func TestFormat_VerboseCause(t *testing.T) {
	err := Wrap(EReportWrite, "cannot create report", fmt.Errorf("permission denied"))

	plain := Format(err, PrintOptions{})
	if strings.Contains(plain, "permission denied") {
		t.Errorf("non-verbose output should not include cause:\n%s", plain)
	}

	verbose := Format(err, PrintOptions{Verbose: true})
	if !strings.Contains(verbose, "cause: permission denied") {
		t.Errorf("verbose output missing cause:\n%s", verbose)
	}
}

func TestFormat_SanitizesNewlines(t *testing.T) {
	err := NewWithDetails(EToolFailed, "readfile failed", map[string]string{
		"path": "/data/a\n/evil",
	})
	got := Format(err, PrintOptions{})
	if strings.Contains(got, "path: /data/a\n/evil") {
		t.Errorf("newline not escaped in context value:\n%s", got)
	}
	if !strings.Contains(got, `path: /data/a\n/evil`) {
		t.Errorf("expected escaped newline in context value:\n%s", got)
	}
}
