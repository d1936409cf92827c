// Package coords parses the sexagesimal coordinate strings emitted by the
// header-metadata tool and validates their ranges. The report always
// carries the tool's strings verbatim; this package only backs the
// operator warnings for suspect coordinates.
package coords

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/soniakeys/unit"
)

// ParseRA parses a right ascension of the form "hh:mm:ss.ss".
// Returns the angle and an error if the string is malformed or the value
// is outside [0h, 24h).
func ParseRA(s string) (unit.Angle, error) {
	neg, h, m, sec, err := splitSexagesimal(s)
	if err != nil {
		return 0, fmt.Errorf("right ascension %q: %w", s, err)
	}
	if neg {
		return 0, fmt.Errorf("right ascension %q: negative", s)
	}
	if h >= 24 || m >= 60 || sec >= 60 {
		return 0, fmt.Errorf("right ascension %q: component out of range", s)
	}
	hours := h + m/60 + sec/3600
	return unit.AngleFromDeg(hours * 15), nil
}

// ParseDec parses a declination of the form "[+-]dd:mm:ss.s".
// Returns the angle and an error if the string is malformed or the value
// is outside [-90°, +90°].
func ParseDec(s string) (unit.Angle, error) {
	neg, d, m, sec, err := splitSexagesimal(s)
	if err != nil {
		return 0, fmt.Errorf("declination %q: %w", s, err)
	}
	if m >= 60 || sec >= 60 {
		return 0, fmt.Errorf("declination %q: component out of range", s)
	}
	deg := d + m/60 + sec/3600
	if neg {
		deg = -deg
	}
	a := unit.AngleFromDeg(deg)
	if deg < -90 || deg > 90 {
		return a, fmt.Errorf("declination %q: %.4f° outside [-90°, +90°]", s, a.Deg())
	}
	return a, nil
}

// splitSexagesimal splits "dd:mm:ss.s" with an optional leading sign into
// its components. All three components must be present.
func splitSexagesimal(s string) (neg bool, d, m, sec float64, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, 0, 0, 0, fmt.Errorf("empty")
	}
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return false, 0, 0, 0, fmt.Errorf("want three colon-separated components, got %d", len(parts))
	}
	if d, err = strconv.ParseFloat(parts[0], 64); err != nil {
		return false, 0, 0, 0, fmt.Errorf("bad degrees component %q", parts[0])
	}
	if m, err = strconv.ParseFloat(parts[1], 64); err != nil {
		return false, 0, 0, 0, fmt.Errorf("bad minutes component %q", parts[1])
	}
	if sec, err = strconv.ParseFloat(parts[2], 64); err != nil {
		return false, 0, 0, 0, fmt.Errorf("bad seconds component %q", parts[2])
	}
	if d < 0 || m < 0 || sec < 0 {
		return false, 0, 0, 0, fmt.Errorf("component after sign must be non-negative")
	}
	return neg, d, m, sec, nil
}
