package snapshot

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/densfit/fit"
	"github.com/arloliu/densfit/series"
	"github.com/arloliu/densfit/validate"
)

// FitRecord is the stored form of a fit result.
type FitRecord struct {
	Breakpoint  float64   `msgpack:"breakpoint"`
	Objective   float64   `msgpack:"objective"`
	Compression []float64 `msgpack:"compression"`
	Compaction  []float64 `msgpack:"compaction"`
	Evaluations int       `msgpack:"evaluations"`
	Converged   bool      `msgpack:"converged"`
}

// Snapshot is a golden record of one fitted curve.
type Snapshot struct {
	ID          string              `msgpack:"id"`
	Name        string              `msgpack:"name"`
	CreatedAt   time.Time           `msgpack:"created_at"`
	Strain      []float64           `msgpack:"strain"`
	Stress      []float64           `msgpack:"stress"`
	Fingerprint uint64              `msgpack:"fingerprint"`
	Summary     validate.Summary    `msgpack:"summary"`
	Fit         FitRecord           `msgpack:"fit"`
	Reference   *validate.Reference `msgpack:"reference,omitempty"`
}

// New records s and its fit result under name with a fresh random ID.
func New(name string, s *series.Series, r *fit.Result) *Snapshot {
	return &Snapshot{
		ID:          uuid.New().String(),
		Name:        name,
		CreatedAt:   time.Now().UTC(),
		Strain:      s.Strains(),
		Stress:      s.Stresses(),
		Fingerprint: s.Fingerprint(),
		Summary:     validate.Summarize(s, r),
		Fit: FitRecord{
			Breakpoint:  r.Breakpoint,
			Objective:   r.Objective,
			Compression: append([]float64(nil), r.Compression.Coefficients...),
			Compaction:  append([]float64(nil), r.Compaction.Coefficients...),
			Evaluations: r.Search.Evaluations,
			Converged:   r.Search.Converged,
		},
	}
}

// WithReference attaches the reference the fit was validated against.
func (s *Snapshot) WithReference(ref validate.Reference) *Snapshot {
	s.Reference = &ref
	return s
}

// Series rebuilds the recorded sample series.
func (s *Snapshot) Series() (*series.Series, error) {
	out, err := series.New(s.Strain, s.Stress)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", s.ID, err)
	}

	return out, nil
}

// AsReference turns the recorded summary into a reference for later runs.
func (s *Snapshot) AsReference() validate.Reference {
	return validate.Reference{
		CompressionRatio:    s.Summary.CompressionRatio,
		DensificationStrain: s.Summary.DensificationStrain,
		DensificationStress: s.Summary.DensificationStress,
		CompressionModulus:  s.Summary.CompressionModulus,
	}
}

// String returns a one-line description of the snapshot.
func (s *Snapshot) String() string {
	return fmt.Sprintf("Snapshot{ID: %s, Name: %q, Samples: %d, Breakpoint: %.6g, Fingerprint: %016x}",
		s.ID, s.Name, len(s.Strain), s.Fit.Breakpoint, s.Fingerprint)
}
