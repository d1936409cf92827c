package header

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/petabyte-project/pointings/internal/config"
	"github.com/petabyte-project/pointings/internal/exec"
	"github.com/petabyte-project/pointings/internal/schema"
	"github.com/petabyte-project/pointings/internal/testutil"
)

const readfileOutput = `                Telescope = Arecibo
                 Frontend = alfa
                  Backend = PDEV
           MJD start time (STT_*) = 56789.1234567
                 RA J2000 = 16:07:12.1000
                Dec J2000 = -00:32:40.800
      Central freq (MHz) = 1375.5
       Time per file (s) = 268.435456
         Sample time (us) = 65.4762
     Total Bandwidth (MHz) = 322.617
       Number of channels = 960
           Number of polns = 2 (summed)
              Source Name = P2030.20141009.G46.81-01.09.N
   Number of bits per sample = 8
                     Beam = 3 of 7
        Low channel (MHz) = 1214.28
       High channel (MHz) = 1536.56
        Polarization type = AABB
   garbage line without separator
`

const psreditOutput = "file	/data/a/obs1.fits\nobs_mode		SEARCH\n"

func defaultExtractor(fr *testutil.FakeRunner) *Extractor {
	return NewExtractor(fr, config.DefaultToolConfig(), slog.Default())
}

func TestExtract_PopulatesFields(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Script("readfile /data/a/obs1.fits", exec.Result{Stdout: readfileOutput})
	fr.Script("psredit /data/a/obs1.fits", exec.Result{Stdout: psreditOutput})

	rec, err := defaultExtractor(fr).Extract(context.Background(), "/data/a/obs1.fits")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"Telescope", rec.Telescope, "Arecibo"},
		{"Frontend", rec.Frontend, "alfa"},
		{"Backend", rec.Backend, "PDEV"},
		{"MJD", rec.MJD, "56789.1234567"},
		{"RA", rec.RA, "16:07:12.1000"},
		{"Dec", rec.Dec, "-00:32:40.800"},
		{"Freq", rec.Freq, "1375.5"},
		{"Length", rec.Length, "268.435456"},
		{"SamplingTime", rec.SamplingTime, "0.0654762"},
		{"Bandwidth", rec.Bandwidth, "322.617"},
		{"FreqChannels", rec.FreqChannels, "960"},
		{"NumPols", rec.NumPols, "2"},
		{"SourceName", rec.SourceName, "P2030.20141009.G46.81-01.09.N"},
		{"Bits", rec.Bits, "8"},
		{"Beam", rec.Beam, "3"},
		{"FHigh", rec.FHigh, "1214.28"},
		{"FLow", rec.FLow, "1536.56"},
		{"PolType", rec.PolType, "AABB"},
		{"BackendMode", rec.BackendMode, "SEARCH"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestExtract_MissingKeysStaySentinel(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Script("readfile", exec.Result{Stdout: "Telescope = GBT\n"})
	fr.Script("psredit", exec.Result{Stdout: ""})

	rec, err := defaultExtractor(fr).Extract(context.Background(), "/data/a/obs1.fits")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Telescope != "GBT" {
		t.Errorf("Telescope = %q, want GBT", rec.Telescope)
	}
	if rec.MJD != schema.Missing {
		t.Errorf("MJD = %q, want sentinel", rec.MJD)
	}
	if rec.BackendMode != schema.Missing {
		t.Errorf("BackendMode = %q, want sentinel", rec.BackendMode)
	}
	// Beam defaults to 0 when the header lists no beams.
	if rec.Beam != "0" {
		t.Errorf("Beam = %q, want 0", rec.Beam)
	}
}

func TestExtract_FilSkipsSecondaryTool(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Script("readfile", exec.Result{Stdout: "Telescope = Parkes\n"})

	rec, err := defaultExtractor(fr).Extract(context.Background(), "/data/a/obs1.fil")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls := fr.CallsFor("psredit"); len(calls) != 0 {
		t.Errorf("psredit invoked %d times for .fil file, want 0", len(calls))
	}
	if rec.BackendMode != schema.Missing {
		t.Errorf("BackendMode = %q, want sentinel", rec.BackendMode)
	}
}

func TestExtract_HeaderToolNonZeroExit(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Script("readfile", exec.Result{ExitCode: 1, Stderr: "cannot read header"})

	_, err := defaultExtractor(fr).Extract(context.Background(), "/data/a/obs1.fits")
	var te *ToolError
	if !errors.As(err, &te) {
		t.Fatalf("expected *ToolError, got %v", err)
	}
	if te.Tool != "readfile" || te.ExitCode != 1 {
		t.Errorf("ToolError = %+v", te)
	}
}

func TestExtract_HeaderToolLaunchFailure(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.ScriptErr("readfile", fmt.Errorf("executable file not found"))

	_, err := defaultExtractor(fr).Extract(context.Background(), "/data/a/obs1.fits")
	var te *ToolError
	if !errors.As(err, &te) {
		t.Fatalf("expected *ToolError, got %v", err)
	}
	if te.Err == nil {
		t.Error("launch failure should carry the underlying error")
	}
}

func TestExtract_EncodingError(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Script("readfile", exec.Result{Stdout: "Telescope = \xff\xfe garbled\n"})

	_, err := defaultExtractor(fr).Extract(context.Background(), "/data/a/obs1.fits")
	if !errors.Is(err, ErrEncoding) {
		t.Fatalf("expected ErrEncoding, got %v", err)
	}
}

func TestExtract_SecondaryEncodingError(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Script("readfile", exec.Result{Stdout: "Telescope = GBT\n"})
	fr.Script("psredit", exec.Result{Stdout: "obs_mode \xff PSR\n"})

	_, err := defaultExtractor(fr).Extract(context.Background(), "/data/a/obs1.fits")
	if !errors.Is(err, ErrEncoding) {
		t.Fatalf("expected ErrEncoding from secondary tool, got %v", err)
	}
}

func TestExtract_SecondaryToolFailureIsNonFatal(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Script("readfile", exec.Result{Stdout: "Telescope = GBT\n"})
	fr.Script("psredit", exec.Result{ExitCode: 2, Stderr: "not a PSRFITS file"})

	rec, err := defaultExtractor(fr).Extract(context.Background(), "/data/a/obs1.fits")
	if err != nil {
		t.Fatalf("secondary tool failure should not fail extraction: %v", err)
	}
	if rec.BackendMode != schema.Missing {
		t.Errorf("BackendMode = %q, want sentinel", rec.BackendMode)
	}
}

func TestExtract_ToolsRunInScratchDir(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Script("readfile", exec.Result{Stdout: ""})
	fr.Script("psredit", exec.Result{Stdout: ""})

	_, err := defaultExtractor(fr).Extract(context.Background(), "/data/a/obs1.fits")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := fr.CallsFor("readfile")
	if len(calls) != 1 {
		t.Fatalf("readfile invoked %d times, want 1", len(calls))
	}
	if calls[0].Dir == "" {
		t.Error("readfile should run inside a scratch directory")
	}
	psreditCalls := fr.CallsFor("psredit")
	if len(psreditCalls) != 1 {
		t.Fatalf("psredit invoked %d times, want 1", len(psreditCalls))
	}
	if psreditCalls[0].Dir != calls[0].Dir {
		t.Error("both tools should share the per-file scratch directory")
	}
}

func TestExtract_CustomToolNames(t *testing.T) {
	cfg := config.DefaultToolConfig()
	cfg.ReadfileBin = "/opt/presto/bin/readfile"

	fr := testutil.NewFakeRunner()
	fr.Script("/opt/presto/bin/readfile", exec.Result{Stdout: "Telescope = FAST\n"})
	fr.Script("psredit", exec.Result{Stdout: ""})

	rec, err := NewExtractor(fr, cfg, nil).Extract(context.Background(), "/data/a/obs1.fits")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Telescope != "FAST" {
		t.Errorf("Telescope = %q, want FAST", rec.Telescope)
	}
}
