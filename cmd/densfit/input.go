package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arloliu/densfit/series"
)

// loadCSV reads a two-column strain,stress file. A non-numeric first row is
// treated as a header and lines starting with '#' are ignored.
func loadCSV(path string) (*series.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseCSV(f)
}

func parseCSV(r io.Reader) (*series.Series, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var strain, stress []float64
	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("CSV row %d: expected 2 columns, got %d", row+1, len(record))
		}

		x, errX := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if errX != nil || errY != nil {
			if row == 0 {
				continue
			}

			return nil, fmt.Errorf("CSV row %d: %w", row+1, errors.Join(errX, errY))
		}

		strain = append(strain, x)
		stress = append(stress, y)
	}

	return series.New(strain, stress)
}

// probeOutput mirrors the simulation probe history file: per job, a reaction
// force probe at the bottom platen and a displacement probe at the top one.
type probeOutput map[string]struct {
	History struct {
		BottomReaction struct {
			ReactionForce struct {
				Y []float64 `json:"y"`
			} `json:"reaction_force"`
		} `json:"bot_reaction_probe"`
		TopPlaten struct {
			Displacement struct {
				Y [][]float64 `json:"y"`
			} `json:"displacement"`
		} `json:"top_platen_probe"`
	} `json:"history"`
}

// loadProbe converts the probe history of job into an engineering
// stress-strain series. The top platen moves down, so its displacement is
// negated.
func loadProbe(path, job string, padHeight, platenWidthMM float64) (*series.Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return parseProbe(data, job, padHeight, platenWidthMM)
}

func parseProbe(data []byte, job string, padHeight, platenWidthMM float64) (*series.Series, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding probe file: %w", err)
	}

	entry, ok := out[job]
	if !ok {
		return nil, fmt.Errorf("probe file has no job %q", job)
	}

	force := entry.History.BottomReaction.ReactionForce.Y
	rows := entry.History.TopPlaten.Displacement.Y
	displacement := make([]float64, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			return nil, fmt.Errorf("probe displacement row %d is empty", i)
		}
		displacement[i] = -row[0]
	}

	return series.FromProbe(force, displacement, padHeight, platenWidthMM)
}
