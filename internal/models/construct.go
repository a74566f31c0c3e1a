package models

import (
	"fmt"
	"sort"
)

// Construct is a named trait dimension scored 0-100
type Construct string

const (
	StressRegulation   Construct = "stress_regulation"
	FocusControl       Construct = "focus_control"
	CommConfidence     Construct = "comm_confidence"
	LeadershipClarity  Construct = "leadership_clarity"
	Resilience         Construct = "resilience"
	AttitudePositivity Construct = "attitude_positivity"
	PurposeAlignment   Construct = "purpose_alignment"
)

// AllConstructs lists every construct in enumeration order. Tie-breaks follow this order.
var AllConstructs = []Construct{
	StressRegulation,
	FocusControl,
	CommConfidence,
	LeadershipClarity,
	Resilience,
	AttitudePositivity,
	PurposeAlignment,
}

var constructLabels = map[Construct]string{
	StressRegulation:   "Stress Regulation",
	FocusControl:       "Focus Control",
	CommConfidence:     "Communication Confidence",
	LeadershipClarity:  "Leadership Clarity",
	Resilience:         "Resilience",
	AttitudePositivity: "Positive Attitude",
	PurposeAlignment:   "Purpose Alignment",
}

// Label returns the display label for a construct
func (c Construct) Label() string {
	if label, ok := constructLabels[c]; ok {
		return label
	}
	return string(c)
}

// Valid reports whether c belongs to the fixed construct set
func (c Construct) Valid() bool {
	_, ok := constructLabels[c]
	return ok
}

// ScoreSet maps every construct to an integer score in [0,100]
type ScoreSet map[Construct]int

// NewScoreSet returns a score set with all seven constructs at 0
func NewScoreSet() ScoreSet {
	scores := make(ScoreSet, len(AllConstructs))
	for _, c := range AllConstructs {
		scores[c] = 0
	}
	return scores
}

// Validate checks that the set holds exactly the seven constructs with values in range
func (s ScoreSet) Validate() error {
	if len(s) != len(AllConstructs) {
		return fmt.Errorf("score set must contain %d constructs, got %d", len(AllConstructs), len(s))
	}
	keys := make([]string, 0, len(s))
	for c := range s {
		keys = append(keys, string(c))
	}
	sort.Strings(keys)
	for _, k := range keys {
		c := Construct(k)
		if !c.Valid() {
			return fmt.Errorf("unknown construct %q", k)
		}
		if v := s[c]; v < 0 || v > 100 {
			return fmt.Errorf("construct %s out of range: %d", k, v)
		}
	}
	return nil
}

// Clone returns an independent copy of the set
func (s ScoreSet) Clone() ScoreSet {
	if s == nil {
		return nil
	}
	out := make(ScoreSet, len(s))
	for c, v := range s {
		out[c] = v
	}
	return out
}

// TemplateData exposes the scores keyed by plain strings for text/template lookups
func (s ScoreSet) TemplateData() map[string]int {
	data := make(map[string]int, len(s))
	for c, v := range s {
		data[string(c)] = v
	}
	return data
}
