package parser

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// DefaultCSV is loaded when the caller passes an empty path.
const DefaultCSV = "polar.csv"

// Required column names.
const (
	ColumnAoA = "AoA"
	ColumnCl  = "Cl"
	ColumnCd  = "Cd"
)

// MomentPrefix starts every moment coefficient column name, e.g. "cm_x0.16".
const MomentPrefix = "cm_x"

var (
	// ErrNotFound is returned when the input file does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrMissingColumn is returned when one of AoA, Cl or Cd is absent.
	ErrMissingColumn = errors.New("missing required column")
)

// ChordPositions are the canonical chord stations (x/c) for which a moment
// column is looked up. Columns for any other station are not plotted.
var ChordPositions = []float64{0.00, 0.16, 0.32, 0.48, 0.64, 0.80, 0.96, 1.12, 1.28, 1.44, 1.60}

// MomentColumn returns the column name for a chord station.
func MomentColumn(pos float64) string {
	return fmt.Sprintf("%s%.2f", MomentPrefix, pos)
}

// PolarTable holds one polar sweep. It is never mutated after Load returns.
type PolarTable struct {
	Source   string
	Columns  []string // header order as found in the file
	AoA      []float64
	Cl       []float64
	Cd       []float64
	Moments  map[string][]float64 // every cm_x* column, keyed by exact name
	Warnings []string             // non-fatal problems found while loading
}

// NewPolarTable returns an empty table for the given source.
func NewPolarTable(source string) *PolarTable {
	return &PolarTable{
		Source:   source,
		Columns:  make([]string, 0),
		Moments:  make(map[string][]float64),
		Warnings: make([]string, 0),
	}
}

// Rows returns the number of samples.
func (t *PolarTable) Rows() int {
	return len(t.AoA)
}

// HasColumn reports whether the header contained name exactly.
func (t *PolarTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AngleRange returns the smallest and largest angle of attack, ignoring
// missing values. Both are zero when no angle is present.
func (t *PolarTable) AngleRange() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, a := range t.AoA {
		if math.IsNaN(a) {
			continue
		}
		lo = math.Min(lo, a)
		hi = math.Max(hi, a)
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

// Moment returns the moment coefficients at a canonical chord station.
func (t *PolarTable) Moment(pos float64) ([]float64, bool) {
	vals, ok := t.Moments[MomentColumn(pos)]
	return vals, ok
}

// IgnoredMomentColumns lists cm_x* columns that match none of the
// canonical chord stations, in header order.
func (t *PolarTable) IgnoredMomentColumns() []string {
	canonical := make(map[string]bool, len(ChordPositions))
	for _, pos := range ChordPositions {
		canonical[MomentColumn(pos)] = true
	}
	var ignored []string
	for _, c := range t.Columns {
		if strings.HasPrefix(c, MomentPrefix) && !canonical[c] {
			ignored = append(ignored, c)
		}
	}
	return ignored
}

// IsNotFound reports whether err means the input file does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
