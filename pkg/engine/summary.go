package engine

import (
	"fmt"
	"math"
)

// Display placeholders. They describe a simulated estate far larger than the
// catalog and are not derived from it.
const (
	DefaultTotalAssets       = 1248
	DefaultComplianceScore   = 78
	DefaultAutoFixedBaseline = 40
)

// HealthyScore is the lowest score shown without a call to action
const HealthyScore = 90

// ScorePolicy selects how the compliance score is obtained
type ScorePolicy string

const (
	// ScoreConstant shows the configured display constant
	ScoreConstant ScorePolicy = "constant"
	// ScoreComputed shows the catalog pass rate
	ScoreComputed ScorePolicy = "computed"
)

// ParseScorePolicy accepts the policy names used on the command line
func ParseScorePolicy(s string) (ScorePolicy, error) {
	switch ScorePolicy(s) {
	case "", ScoreConstant:
		return ScoreConstant, nil
	case ScoreComputed:
		return ScoreComputed, nil
	default:
		return "", fmt.Errorf("unknown score policy %q (want constant or computed)", s)
	}
}

// Result holds the counters of a single run
type Result struct {
	Total        int
	Passed       int
	Failed       int
	AutoFixed    int
	OpenCritical int
	Tickets      []string
}

// Summary is what the dashboard block shows
type Summary struct {
	TotalAssets  int
	OpenCritical int
	AutoFixed    int
	Score        int
	ScoreNote    string
	Policy       ScorePolicy
}

// ComputeScore returns the rounded pass percentage, 0 for an empty catalog
func ComputeScore(passed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(passed) / float64(total)))
}

// Summarize turns run counters into the dashboard figures
func Summarize(res Result, opts Options) Summary {
	s := Summary{
		TotalAssets:  opts.TotalAssets,
		OpenCritical: res.OpenCritical,
		AutoFixed:    opts.AutoFixedBaseline + res.AutoFixed,
		Score:        opts.ComplianceScore,
		Policy:       opts.ScorePolicy,
	}
	if s.Policy == ScoreComputed {
		s.Score = ComputeScore(res.Passed, res.Total)
	} else {
		s.Policy = ScoreConstant
	}

	s.ScoreNote = "Needs Action"
	if s.Score >= HealthyScore {
		s.ScoreNote = "Healthy"
	}
	return s
}
