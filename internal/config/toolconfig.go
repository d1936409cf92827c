package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/petabyte-project/pointings/internal/errors"
)

// ToolConfig holds the external-tool and candidate-filter settings.
type ToolConfig struct {
	// ReadfileBin is the header-metadata tool invoked for every candidate.
	ReadfileBin string `yaml:"readfile_bin"`

	// PsreditBin is the secondary metadata tool; not invoked for
	// filterbank files, which it cannot read.
	PsreditBin string `yaml:"psredit_bin"`

	// Extensions are the recognized data-file extensions.
	Extensions []string `yaml:"extensions"`

	// CalMarker is the filename substring marking calibration scans,
	// which are excluded from scanning.
	CalMarker string `yaml:"cal_marker"`
}

// DefaultToolConfig returns the standard tool settings.
func DefaultToolConfig() ToolConfig {
	return ToolConfig{
		ReadfileBin: "readfile",
		PsreditBin:  "psredit",
		Extensions:  []string{".fits", ".fil"},
		CalMarker:   "cal",
	}
}

// LoadToolConfig reads a YAML tool config and overlays it on the defaults.
// Unknown fields are rejected. An unreadable file is a fatal configuration
// error: the operator asked for this file by flag.
func LoadToolConfig(path string) (ToolConfig, error) {
	cfg := DefaultToolConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.EToolConfig, "failed to read tool config "+path, err)
	}

	var overlay ToolConfig
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&overlay); err != nil {
		return cfg, errors.Wrap(errors.EToolConfig, "invalid tool config "+path, err)
	}

	if overlay.ReadfileBin != "" {
		cfg.ReadfileBin = overlay.ReadfileBin
	}
	if overlay.PsreditBin != "" {
		cfg.PsreditBin = overlay.PsreditBin
	}
	if len(overlay.Extensions) > 0 {
		for _, ext := range overlay.Extensions {
			if !strings.HasPrefix(ext, ".") {
				return cfg, errors.NewWithDetails(errors.EToolConfig,
					"extensions must start with a dot",
					map[string]string{"file": path, "line": ext})
			}
		}
		cfg.Extensions = overlay.Extensions
	}
	if overlay.CalMarker != "" {
		cfg.CalMarker = overlay.CalMarker
	}
	return cfg, nil
}
