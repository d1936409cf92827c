// Package schema defines the fixed output schema for pointing records.
package schema

// Missing is the sentinel written for any field the metadata tools did not
// provide. Report consumers grep for it to find incomplete records.
const Missing = "None"

// Columns is the fixed, ordered report schema. The order is a contract with
// the report format; do not reorder.
var Columns = []string{
	"Path",
	"Survey",
	"Telescope",
	"Frontend",
	"Backend",
	"MJD",
	"RA J2000",
	"Dec J2000",
	"Freq",
	"Length",
	"Sampling time",
	"Bandwidth",
	"Freq channels",
	"Num_pols",
	"Source name",
	"Bits",
	"Beam",
	"f_high",
	"f_low",
	"Pol_type",
	"Backend_mode",
}

// PointingRecord is one row of the output report: the observational
// metadata for a single telescope pointing. Fields the tools did not emit
// hold the Missing sentinel. Records are append-only and immutable once
// built.
type PointingRecord struct {
	Path         string
	Survey       string
	Telescope    string
	Frontend     string
	Backend      string
	MJD          string
	RA           string
	Dec          string
	Freq         string
	Length       string
	SamplingTime string
	Bandwidth    string
	FreqChannels string
	NumPols      string
	SourceName   string
	Bits         string
	Beam         string
	FHigh        string
	FLow         string
	PolType      string
	BackendMode  string
}

// NewRecord returns a PointingRecord with every field set to the Missing
// sentinel.
func NewRecord() PointingRecord {
	return PointingRecord{
		Path:         Missing,
		Survey:       Missing,
		Telescope:    Missing,
		Frontend:     Missing,
		Backend:      Missing,
		MJD:          Missing,
		RA:           Missing,
		Dec:          Missing,
		Freq:         Missing,
		Length:       Missing,
		SamplingTime: Missing,
		Bandwidth:    Missing,
		FreqChannels: Missing,
		NumPols:      Missing,
		SourceName:   Missing,
		Bits:         Missing,
		Beam:         Missing,
		FHigh:        Missing,
		FLow:         Missing,
		PolType:      Missing,
		BackendMode:  Missing,
	}
}

// Fields returns the record's values in schema column order.
func (r PointingRecord) Fields() []string {
	return []string{
		r.Path,
		r.Survey,
		r.Telescope,
		r.Frontend,
		r.Backend,
		r.MJD,
		r.RA,
		r.Dec,
		r.Freq,
		r.Length,
		r.SamplingTime,
		r.Bandwidth,
		r.FreqChannels,
		r.NumPols,
		r.SourceName,
		r.Bits,
		r.Beam,
		r.FHigh,
		r.FLow,
		r.PolType,
		r.BackendMode,
	}
}

// MissingFields returns the column names still holding the Missing
// sentinel, in schema order. Path and Survey are excluded: they are filled
// by the caller, not by the metadata tools.
func (r PointingRecord) MissingFields() []string {
	fields := r.Fields()
	var missing []string
	for i, col := range Columns {
		if col == "Path" || col == "Survey" {
			continue
		}
		if fields[i] == Missing {
			missing = append(missing, col)
		}
	}
	return missing
}
