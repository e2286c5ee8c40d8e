package analysis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"github.com/user/polar_plotter/internal/parser"
)

// Summarize computes the headline figures of a polar sweep.
func Summarize(t *parser.PolarTable) (*Summary, error) {
	if t == nil || t.Rows() == 0 {
		return nil, fmt.Errorf("polar table is nil or empty, cannot summarize")
	}

	s := NewSummary()
	s.Rows = t.Rows()
	s.Columns = len(t.Columns)

	// Rows with a missing AoA, Cl or Cd take no part in the extrema.
	var aoa, cl, cd []float64
	for i := range t.AoA {
		if math.IsNaN(t.AoA[i]) || math.IsNaN(t.Cl[i]) || math.IsNaN(t.Cd[i]) {
			s.AnalysisErrors = append(s.AnalysisErrors, fmt.Sprintf("row %d has missing values, skipped", i+1))
			continue
		}
		aoa = append(aoa, t.AoA[i])
		cl = append(cl, t.Cl[i])
		cd = append(cd, t.Cd[i])
	}
	if len(aoa) == 0 {
		return nil, fmt.Errorf("no complete rows in polar table, cannot summarize")
	}
	s.MinAoA = floats.Min(aoa)
	s.MaxAoA = floats.Max(aoa)

	clMax, err := stats.Max(cl)
	if err != nil {
		return nil, fmt.Errorf("failed to compute Cl max: %w", err)
	}
	i := floats.MaxIdx(cl)
	s.MaxCl = Extremum{Value: clMax, AoA: aoa[i]}

	cdMin, err := stats.Min(cd)
	if err != nil {
		return nil, fmt.Errorf("failed to compute Cd min: %w", err)
	}
	i = floats.MinIdx(cd)
	s.MinCd = Extremum{Value: cdMin, AoA: aoa[i]}

	for i := range cl {
		if cd[i] == 0 {
			s.AnalysisErrors = append(s.AnalysisErrors, fmt.Sprintf("Cd is zero at AoA %g, skipped for Cl/Cd", aoa[i]))
			continue
		}
		ld := cl[i] / cd[i]
		if !s.HasLiftToDrag || ld > s.MaxLiftToDrag.Value {
			s.MaxLiftToDrag = Extremum{Value: ld, AoA: aoa[i]}
			s.HasLiftToDrag = true
		}
	}

	for _, pos := range parser.ChordPositions {
		if _, ok := t.Moment(pos); ok {
			s.MomentStations++
		}
	}
	return s, nil
}
