// Command densfit finds the densification breakpoint of a stress-strain
// curve and checks it against reference values.
//
// Usage:
//
//	densfit -csv curve.csv -expected-strain 0.46 -expected-modulus 45.2 -tolerance 1e-3
//	densfit -probe cf_iga_data_output.json -pad-height 3.2 -platen-width 20 -snapshot pad.dfsn
//	densfit -csv curve.csv -golden pad.dfsn
//
// The exit status is 0 when the fit succeeds and every reference check
// passes, 1 on a fit or comparison failure and 2 on invalid usage.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"go.uber.org/zap"

	"github.com/arloliu/densfit/fit"
	"github.com/arloliu/densfit/format"
	"github.com/arloliu/densfit/internal/logging"
	"github.com/arloliu/densfit/series"
	"github.com/arloliu/densfit/snapshot"
	"github.com/arloliu/densfit/validate"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var errUsage = errors.New("usage error")

type options struct {
	csvPath     string
	probePath   string
	probeJob    string
	padHeight   float64
	platenWidth float64

	expectedStrain  float64
	expectedStress  float64
	expectedModulus float64
	expectedRatio   float64
	tolerance       float64
	goldenPath      string

	snapshotPath string
	snapshotName string
	compression  string

	xTolerance float64
	debug      bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	nan := math.NaN()
	opts := &options{}

	fs := flag.NewFlagSet("densfit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.csvPath, "csv", "", "Two-column strain,stress CSV file")
	fs.StringVar(&opts.probePath, "probe", "", "Simulation probe history JSON file")
	fs.StringVar(&opts.probeJob, "probe-job", "compress_pad", "Job name inside the probe file")
	fs.Float64Var(&opts.padHeight, "pad-height", 0, "Undeformed pad height, same unit as the probe displacement")
	fs.Float64Var(&opts.platenWidth, "platen-width", 0, "Platen width in mm")
	fs.Float64Var(&opts.expectedStrain, "expected-strain", nan, "Expected densification strain")
	fs.Float64Var(&opts.expectedStress, "expected-stress", nan, "Expected densification stress")
	fs.Float64Var(&opts.expectedModulus, "expected-modulus", nan, "Expected compression modulus")
	fs.Float64Var(&opts.expectedRatio, "expected-ratio", nan, "Expected final compression ratio")
	fs.Float64Var(&opts.tolerance, "tolerance", validate.DefaultTolerance().Relative, "Relative tolerance of reference checks")
	fs.StringVar(&opts.goldenPath, "golden", "", "Compare against the summary stored in this snapshot")
	fs.StringVar(&opts.snapshotPath, "snapshot", "", "Write a snapshot of the fit to this path")
	fs.StringVar(&opts.snapshotName, "name", "", "Snapshot name (defaults to the input path)")
	fs.StringVar(&opts.compression, "compression", "zstd", "Snapshot compression: none, zstd, s2, lz4")
	fs.Float64Var(&opts.xTolerance, "xtol", fit.DefaultConfig().XTolerance, "Absolute breakpoint tolerance")
	fs.BoolVar(&opts.debug, "debug", false, "Log every candidate breakpoint")

	if err := fs.Parse(args); err != nil {
		return nil, errUsage
	}

	if (opts.csvPath == "") == (opts.probePath == "") {
		fmt.Fprintln(stderr, "Error: exactly one of -csv or -probe is required")
		return nil, errUsage
	}
	if opts.probePath != "" && (opts.padHeight <= 0 || opts.platenWidth <= 0) {
		fmt.Fprintln(stderr, "Error: -probe requires positive -pad-height and -platen-width")
		return nil, errUsage
	}
	if opts.tolerance < 0 {
		fmt.Fprintln(stderr, "Error: -tolerance must be non-negative")
		return nil, errUsage
	}

	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return exitUsage
	}

	compression, err := format.ParseCompression(opts.compression)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	logger, err := logging.New(opts.debug)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	defer logging.Sync(logger)

	s, source, err := loadSeries(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading %s: %v\n", source, err)
		return exitFailure
	}
	logger.Info("loaded sample series", zap.String("source", source), zap.Int("samples", s.Len()))

	result, err := fit.Search(s, fit.WithLogger(logger), fit.WithXTolerance(opts.xTolerance))
	if err != nil {
		fmt.Fprintf(stderr, "Error fitting %s: %v\n", source, err)
		return exitFailure
	}

	summary := validate.Summarize(s, result)
	printResult(stdout, source, s, result, summary)

	ref, err := buildReference(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	if opts.snapshotPath != "" {
		name := opts.snapshotName
		if name == "" {
			name = source
		}
		snap := newSnapshot(name, s, result, ref)
		if err := snapshot.WriteFile(opts.snapshotPath, snap, compression); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitFailure
		}
		fmt.Fprintf(stdout, "\nSnapshot %s written to %s (%s)\n", snap.ID, opts.snapshotPath, compression)
	}

	report := validate.Compare(summary, ref, validate.Tolerance{
		Absolute: validate.DefaultTolerance().Absolute,
		Relative: opts.tolerance,
	})
	if len(report.Checks) == 0 {
		return exitOK
	}

	fmt.Fprintf(stdout, "\nReference checks (relative tolerance %g):\n", opts.tolerance)
	fmt.Fprint(stdout, report.String())
	if err := report.Err(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	return exitOK
}

func loadSeries(opts *options) (*series.Series, string, error) {
	if opts.csvPath != "" {
		s, err := loadCSV(opts.csvPath)
		return s, opts.csvPath, err
	}

	s, err := loadProbe(opts.probePath, opts.probeJob, opts.padHeight, opts.platenWidth)

	return s, opts.probePath, err
}

// buildReference starts from the golden snapshot, if any, and overrides it
// with explicitly expected values.
func buildReference(opts *options) (validate.Reference, error) {
	ref := validate.EmptyReference()

	if opts.goldenPath != "" {
		golden, err := snapshot.ReadFile(opts.goldenPath)
		if err != nil {
			return ref, err
		}
		ref = golden.AsReference()
	}

	override := func(dst *float64, v float64) {
		if !math.IsNaN(v) {
			*dst = v
		}
	}
	override(&ref.DensificationStrain, opts.expectedStrain)
	override(&ref.DensificationStress, opts.expectedStress)
	override(&ref.CompressionModulus, opts.expectedModulus)
	override(&ref.CompressionRatio, opts.expectedRatio)

	return ref, nil
}

// newSnapshot builds the snapshot written by -snapshot, attaching ref when it holds
// at least one expected value.
func newSnapshot(name string, s *series.Series, r *fit.Result, ref validate.Reference) *snapshot.Snapshot {
	snap := snapshot.New(name, s, r)
	if !math.IsNaN(ref.CompressionRatio) || !math.IsNaN(ref.DensificationStrain) ||
		!math.IsNaN(ref.DensificationStress) || !math.IsNaN(ref.CompressionModulus) {
		snap.WithReference(ref)
	}

	return snap
}

func printResult(w io.Writer, source string, s *series.Series, r *fit.Result, summary validate.Summary) {
	fmt.Fprintf(w, "Densification Breakpoint Fit\n")
	fmt.Fprintf(w, "============================\n\n")
	fmt.Fprintf(w, "Input: %s (%d samples, strain %.4g to %.4g)\n\n", source, s.Len(), s.First(), s.Last())

	fmt.Fprintf(w, "Compression regime: stress = %.6g * strain\n", r.Compression.Coefficients[0])
	fmt.Fprintf(w, "  domain [%.6g, %.6g], %d points, R² %.4f, relative error %.3g\n",
		r.Compression.Domain.Lo, r.Compression.Domain.Hi, r.Compression.Points, r.Compression.RSquared, r.Compression.RelativeError())
	fmt.Fprintf(w, "Compaction regime:  stress = %.6g * e^(%.6g * strain)\n",
		r.Compaction.Coefficients[0], r.Compaction.Coefficients[1])
	fmt.Fprintf(w, "  domain [%.6g, %.6g], %d points, R² %.4f, relative error %.3g\n\n",
		r.Compaction.Domain.Lo, r.Compaction.Domain.Hi, r.Compaction.Points, r.Compaction.RSquared, r.Compaction.RelativeError())

	fmt.Fprintf(w, "Objective: %.6g after %d evaluations", r.Objective, r.Search.Evaluations)
	if !r.Search.Converged {
		fmt.Fprintf(w, " (evaluation cap reached)")
	}
	fmt.Fprintf(w, "\n\n")

	fmt.Fprintf(w, "%-22s %.10g\n", validate.CompressionRatio, summary.CompressionRatio)
	fmt.Fprintf(w, "%-22s %.10g\n", validate.DensificationStrain, summary.DensificationStrain)
	fmt.Fprintf(w, "%-22s %.10g\n", validate.DensificationStress, summary.DensificationStress)
	fmt.Fprintf(w, "%-22s %.10g\n", validate.CompressionModulus, summary.CompressionModulus)
}
