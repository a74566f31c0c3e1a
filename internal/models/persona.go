package models

// Persona is a demographic/use-case segment chosen during onboarding
type Persona struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Emoji       string `json:"emoji" yaml:"emoji"`
	AgeRange    string `json:"ageRange" yaml:"age_range"`
	Description string `json:"description" yaml:"description"`
	// Label is used in coach rationale copy ("corporate leader")
	Label string `json:"-" yaml:"label"`
	// InsightLabel is used in personality insight copy ("leader")
	InsightLabel string `json:"-" yaml:"insight_label"`
	GrowthFocus  string `json:"-" yaml:"growth_focus"`

	Weights        map[Construct]float64 `json:"weights" yaml:"weights"`
	ArchetypeBonus map[string]float64    `json:"-" yaml:"archetype_bonus"`
}

// Weight returns the persona's weight for a construct, 0 when unset
func (p *Persona) Weight(c Construct) float64 {
	if p == nil || p.Weights == nil {
		return 0
	}
	return p.Weights[c]
}

// Bonus returns the multiplicative bonus this persona gives an archetype, 1 when none
func (p *Persona) Bonus(archetypeID string) float64 {
	if p == nil {
		return 1
	}
	if b, ok := p.ArchetypeBonus[archetypeID]; ok {
		return b
	}
	return 1
}
