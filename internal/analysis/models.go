package analysis

// Extremum is a coefficient value and the angle of attack it occurs at.
type Extremum struct {
	Value float64
	AoA   float64
}

// Summary holds the figures printed after a polar has been loaded.
type Summary struct {
	Rows           int
	Columns        int
	MinAoA         float64
	MaxAoA         float64
	MaxCl          Extremum
	MinCd          Extremum
	MaxLiftToDrag  Extremum // Cl/Cd, rows with Cd == 0 are skipped
	HasLiftToDrag  bool
	MomentStations int // canonical chord stations present in the table
	AnalysisErrors []string
}

// NewSummary returns an empty summary ready to collect analysis errors.
func NewSummary() *Summary {
	return &Summary{
		AnalysisErrors: make([]string, 0),
	}
}
