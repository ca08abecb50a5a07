package snapshot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/densfit/fit"
	"github.com/arloliu/densfit/format"
	"github.com/arloliu/densfit/series"
	"github.com/arloliu/densfit/validate"
)

func fittedCurve(t *testing.T) (*series.Series, *fit.Result) {
	t.Helper()

	strain := make([]float64, 11)
	stress := make([]float64, 11)
	for i := range strain {
		x := float64(i) / 10
		strain[i] = x
		if x <= 0.5 {
			stress[i] = 40 * x
		} else {
			stress[i] = 20 * math.Exp(2*(x-0.5))
		}
	}

	s, err := series.New(strain, stress)
	require.NoError(t, err)
	res, err := fit.Search(s)
	require.NoError(t, err)

	return s, res
}

func sampleSnapshot(t *testing.T) *Snapshot {
	t.Helper()

	s, res := fittedCurve(t)

	return New("pad-stabilized", s, res)
}

func allCompressions() []format.CompressionType {
	return []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	}
}

func TestNew(t *testing.T) {
	s, res := fittedCurve(t)
	snap := New("pad", s, res)

	_, err := uuid.Parse(snap.ID)
	require.NoError(t, err)
	require.Equal(t, "pad", snap.Name)
	require.False(t, snap.CreatedAt.IsZero())
	require.Equal(t, s.Strains(), snap.Strain)
	require.Equal(t, s.Stresses(), snap.Stress)
	require.Equal(t, s.Fingerprint(), snap.Fingerprint)
	require.Equal(t, res.Breakpoint, snap.Fit.Breakpoint)
	require.Equal(t, res.Compaction.Coefficients, snap.Fit.Compaction)
	require.Equal(t, validate.Summarize(s, res), snap.Summary)
	require.Nil(t, snap.Reference)

	other := New("pad", s, res)
	require.NotEqual(t, snap.ID, other.ID)
}

func TestEncodeDecode(t *testing.T) {
	want := sampleSnapshot(t).WithReference(validate.Reference{
		CompressionRatio:    1,
		DensificationStrain: 0.46,
		DensificationStress: 18.4,
		CompressionModulus:  40,
	})

	for _, ct := range allCompressions() {
		t.Run(ct.String(), func(t *testing.T) {
			data, err := Encode(want, ct)
			require.NoError(t, err)
			require.Equal(t, []byte("DFSN"), data[:4])
			require.Equal(t, byte(Version), data[4])
			require.Equal(t, byte(ct), data[5])

			got, err := Decode(data)
			require.NoError(t, err)

			require.Equal(t, want.ID, got.ID)
			require.Equal(t, want.Name, got.Name)
			require.True(t, want.CreatedAt.Equal(got.CreatedAt))
			require.Equal(t, want.Strain, got.Strain)
			require.Equal(t, want.Stress, got.Stress)
			require.Equal(t, want.Fingerprint, got.Fingerprint)
			require.Equal(t, want.Summary, got.Summary)
			require.Equal(t, want.Fit, got.Fit)
			require.Equal(t, want.Reference, got.Reference)
		})
	}
}

func TestDecodedSnapshotRebuildsSeries(t *testing.T) {
	s, res := fittedCurve(t)

	data, err := Encode(New("pad", s, res), format.CompressionZstd)
	require.NoError(t, err)
	snap, err := Decode(data)
	require.NoError(t, err)

	rebuilt, err := snap.Series()
	require.NoError(t, err)
	require.Equal(t, s.Fingerprint(), rebuilt.Fingerprint())

	again, err := fit.Search(rebuilt)
	require.NoError(t, err)
	require.Equal(t, res.Breakpoint, again.Breakpoint)

	report := validate.Compare(validate.Summarize(rebuilt, again), snap.AsReference(), validate.DefaultTolerance())
	require.NoError(t, report.Err())
	require.Len(t, report.Checks, 4)
}

func TestDecodeErrors(t *testing.T) {
	data, err := Encode(sampleSnapshot(t), format.CompressionS2)
	require.NoError(t, err)

	corrupt := func(mutate func([]byte) []byte) []byte {
		c := append([]byte(nil), data...)
		return mutate(c)
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrCorrupted},
		{"short header", data[:HeaderSize-1], ErrCorrupted},
		{"bad magic", corrupt(func(b []byte) []byte { b[0] = 'X'; return b }), ErrCorrupted},
		{"future version", corrupt(func(b []byte) []byte { b[4] = 9; return b }), ErrVersion},
		{"unknown codec", corrupt(func(b []byte) []byte { b[5] = 0; return b }), ErrCorrupted},
		{"truncated payload", data[:len(data)-1], ErrCorrupted},
		{"flipped payload bit", corrupt(func(b []byte) []byte { b[HeaderSize+3] ^= 0x10; return b }), ErrChecksum},
		{"wrong raw length", corrupt(func(b []byte) []byte { b[12]++; return b }), ErrCorrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeFingerprintMismatch(t *testing.T) {
	snap := sampleSnapshot(t)
	snap.Stress[3] += 1

	data, err := Encode(snap, format.CompressionNone)
	require.NoError(t, err)

	_, err = Decode(data)
	require.ErrorIs(t, err, ErrChecksum)
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode(nil, format.CompressionNone)
	require.Error(t, err)

	_, err = Encode(sampleSnapshot(t), format.CompressionType(42))
	require.Error(t, err)
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pad.dfsn")
	want := sampleSnapshot(t)

	require.NoError(t, WriteFile(path, want, format.CompressionLZ4))

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, want.ID, got.ID)
	require.Equal(t, want.Summary, got.Summary)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.dfsn"))
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	_, err = ReadFile(path)
	require.ErrorIs(t, err, ErrCorrupted)
}

func TestSnapshotSeriesInvalid(t *testing.T) {
	snap := &Snapshot{ID: "x", Strain: []float64{0, 1}, Stress: []float64{0, 1}}
	_, err := snap.Series()
	require.ErrorIs(t, err, series.ErrInput)
}

func TestSnapshotString(t *testing.T) {
	snap := sampleSnapshot(t)
	require.Contains(t, snap.String(), snap.ID)
	require.Contains(t, snap.String(), "pad-stabilized")
}

func BenchmarkEncode(b *testing.B) {
	snap := &Snapshot{ID: uuid.NewString(), Strain: make([]float64, 1000), Stress: make([]float64, 1000)}
	for i := range snap.Strain {
		snap.Strain[i] = float64(i) / 999
		snap.Stress[i] = 40 * snap.Strain[i]
	}

	for _, ct := range allCompressions() {
		b.Run(ct.String(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_, _ = Encode(snap, ct)
			}
		})
	}
}
