package header

import (
	"strconv"
	"strings"

	"github.com/petabyte-project/pointings/internal/schema"
)

// fieldByColumn maps a schema column name to the record field it fills.
// Path and Survey are caller-filled and never matched against tool output.
func fieldByColumn(rec *schema.PointingRecord, col string) *string {
	switch col {
	case "Telescope":
		return &rec.Telescope
	case "Frontend":
		return &rec.Frontend
	case "Backend":
		return &rec.Backend
	case "MJD":
		return &rec.MJD
	case "RA J2000":
		return &rec.RA
	case "Dec J2000":
		return &rec.Dec
	case "Freq":
		return &rec.Freq
	case "Length":
		return &rec.Length
	case "Sampling time":
		return &rec.SamplingTime
	case "Bandwidth":
		return &rec.Bandwidth
	case "Freq channels":
		return &rec.FreqChannels
	case "Num_pols":
		return &rec.NumPols
	case "Source name":
		return &rec.SourceName
	case "Bits":
		return &rec.Bits
	case "Beam":
		return &rec.Beam
	case "f_high":
		return &rec.FHigh
	case "f_low":
		return &rec.FLow
	case "Pol_type":
		return &rec.PolType
	case "Backend_mode":
		return &rec.BackendMode
	}
	return nil
}

// applyHeaderLine applies one `key = value` line of header-tool output to
// the record. Lines that do not split into key and value are ignored.
//
// Several rules match on key substring rather than the exact key: header
// text for those fields varies across tool versions (prefixes, units), and
// exact matching would silently regress them.
func applyHeaderLine(rec *schema.PointingRecord, line string) {
	parts := strings.SplitN(strings.TrimSpace(line), " = ", 2)
	if len(parts) != 2 {
		return
	}
	key, value := parts[0], parts[1]

	// A key that names a schema column directly fills that column.
	if f := fieldByColumn(rec, key); f != nil {
		*f = value
	}

	// Substring rules for keys with variable prefixes or units.
	if strings.Contains(key, "MJD start time") {
		rec.MJD = value
	}
	if strings.Contains(key, "Total Bandwidth") {
		rec.Bandwidth = value
	}
	if strings.Contains(key, "bits") {
		rec.Bits = value
	}
	if strings.Contains(key, "Time per file") {
		rec.Length = value
	}

	// Exact rules, applied after the direct-column fill so they win for
	// keys like "Beam" that need value massaging.
	switch key {
	case "Central freq (MHz)":
		rec.Freq = value
	case "Source Name":
		rec.SourceName = value
	case "Sample time (us)":
		if us, err := strconv.ParseFloat(value, 64); err == nil {
			rec.SamplingTime = strconv.FormatFloat(us/1000, 'g', -1, 64)
		}
	case "Number of channels":
		rec.FreqChannels = value
	case "Polarization type":
		rec.PolType = value
	case "Number of polns":
		rec.NumPols = strings.SplitN(value, " ", 2)[0]
	case "Beam":
		// "3 of 7" → "3"
		rec.Beam = strings.SplitN(value, " of ", 2)[0]
	case "Low channel (MHz)":
		// The TPP convention stores the low channel edge as f_high and
		// the high edge as f_low; downstream consumers expect this
		// orientation.
		rec.FHigh = value
	case "High channel (MHz)":
		rec.FLow = value
	}
}

// extractObsMode scans secondary-tool output for the observing mode: the
// last whitespace-separated token on any line mentioning obs_mode. Runs of
// tabs and spaces collapse before tokenizing. Returns "" if no line
// matches.
func extractObsMode(output string) string {
	mode := ""
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "obs_mode") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 0 {
			mode = fields[len(fields)-1]
		}
	}
	return mode
}
