package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/petabyte-project/pointings/internal/errors"
)

// IgnoreList holds files and directory substrings excluded from scanning.
// Built once by LoadIgnoreList and read-only thereafter; it is threaded
// explicitly into the walker rather than kept as package state.
type IgnoreList struct {
	files map[string]bool // exact path match
	dirs  []string        // substring match against the full path
}

// EmptyIgnoreList returns an IgnoreList that ignores nothing.
func EmptyIgnoreList() *IgnoreList {
	return &IgnoreList{files: map[string]bool{}}
}

// LoadIgnoreList reads the tab-separated ignore list. Rows are
// <"file"|"directory">\t<path_or_substring>; anything else is a fatal
// configuration error.
func LoadIgnoreList(path string) (*IgnoreList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.EIgnoreList, "failed to read ignore list "+path, err)
	}

	il := EmptyIgnoreList()
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) != 2 {
			return nil, errors.NewWithDetails(errors.EIgnoreList,
				fmt.Sprintf("ignore list row must be <kind>\\t<value>, got %d columns", len(cols)),
				map[string]string{
					"file": path,
					"row":  fmt.Sprintf("%d", i+1),
					"line": line,
				})
		}
		kind, value := cols[0], cols[1]
		switch kind {
		case "file":
			il.files[value] = true
		case "directory":
			il.dirs = append(il.dirs, value)
		default:
			return nil, errors.NewWithDetails(errors.EIgnoreList,
				fmt.Sprintf("ignore list kind must be \"file\" or \"directory\", got %q", kind),
				map[string]string{
					"file": path,
					"row":  fmt.Sprintf("%d", i+1),
					"line": line,
				})
		}
	}
	return il, nil
}

// Ignored reports whether path is excluded: an exact match against an
// ignored file, or containing any ignored directory substring.
func (il *IgnoreList) Ignored(path string) bool {
	if il == nil {
		return false
	}
	if il.files[path] {
		return true
	}
	for _, d := range il.dirs {
		if strings.Contains(path, d) {
			return true
		}
	}
	return false
}

// Len returns the number of ignore entries.
func (il *IgnoreList) Len() int {
	if il == nil {
		return 0
	}
	return len(il.files) + len(il.dirs)
}
