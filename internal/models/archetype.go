package models

import "encoding/json"

// CoachArchetype is an entry in the shared, read-only coach catalog
type CoachArchetype struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"desc" yaml:"description"`
	Principles  []string `json:"principles" yaml:"principles"`

	// Constructs this archetype draws on when matching
	Constructs []Construct `json:"-" yaml:"constructs"`
	// Rationale is a text/template rendered against the score set
	Rationale string   `json:"-" yaml:"rationale"`
	NextSteps []string `json:"-" yaml:"next_steps"`
}

// ScoredArchetype pairs a catalog archetype with a per-match confidence.
// The catalog entry is referenced, never copied or modified.
type ScoredArchetype struct {
	Archetype  *CoachArchetype
	Confidence int
}

type scoredArchetypeJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"desc"`
	Principles  []string `json:"principles"`
	Confidence  int      `json:"confidence"`
}

// MarshalJSON flattens the archetype fields next to the confidence
func (s ScoredArchetype) MarshalJSON() ([]byte, error) {
	out := scoredArchetypeJSON{Confidence: s.Confidence}
	if s.Archetype != nil {
		out.ID = s.Archetype.ID
		out.Name = s.Archetype.Name
		out.Description = s.Archetype.Description
		out.Principles = s.Archetype.Principles
	}
	return json.Marshal(out)
}

// ID returns the wrapped archetype id
func (s ScoredArchetype) ID() string {
	if s.Archetype == nil {
		return ""
	}
	return s.Archetype.ID
}

// MatchResult is the outcome of a coach match
type MatchResult struct {
	PrimaryArchetype   ScoredArchetype `json:"primaryArchetype"`
	SecondaryArchetype ScoredArchetype `json:"secondaryArchetype"`
	Rationale          string          `json:"rationale"`
	NextSteps          []string        `json:"nextSteps"`
	Confidence         int             `json:"confidence"`
}
