// Package config handles loading and validation of the pointings input
// files: the directory list, the ignore list, and the optional tool config.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/petabyte-project/pointings/internal/errors"
)

// SurveyEntry is one row of the directory list: a survey name and the root
// directory holding its pointing files.
type SurveyEntry struct {
	Survey string
	Root   string
}

// LoadDirList reads the tab-separated directory list and returns its
// entries sorted by (survey, root) so processing order is deterministic.
// A row with the wrong column count is a fatal configuration error; this is
// operator-facing batch tooling and silent skips hide mistakes.
func LoadDirList(path string) ([]SurveyEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.EDirList, "failed to read directory list "+path, err)
	}

	var entries []SurveyEntry
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) != 2 {
			return nil, errors.NewWithDetails(errors.EDirList,
				fmt.Sprintf("directory list row must be <survey>\\t<root>, got %d columns", len(cols)),
				map[string]string{
					"file": path,
					"row":  fmt.Sprintf("%d", i+1),
					"line": line,
				})
		}
		survey := strings.TrimSpace(cols[0])
		root := strings.TrimSpace(cols[1])
		if survey == "" || root == "" {
			return nil, errors.NewWithDetails(errors.EDirList,
				"directory list row has an empty survey or root",
				map[string]string{
					"file": path,
					"row":  fmt.Sprintf("%d", i+1),
					"line": line,
				})
		}
		entries = append(entries, SurveyEntry{Survey: survey, Root: root})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Survey != entries[j].Survey {
			return entries[i].Survey < entries[j].Survey
		}
		return entries[i].Root < entries[j].Root
	})
	return entries, nil
}
