// Package matching ranks coach archetypes for a persona and score set.
package matching

import (
	"fmt"
	"sort"
	"strings"

	"mindcoach/internal/catalog"
	"mindcoach/internal/models"
	"mindcoach/internal/scoring"
)

// PreferenceBonus multiplies the score of the archetype the user asked for
const PreferenceBonus = 1.5

// Request is the input of a coach match
type Request struct {
	PersonaID string
	Scores    models.ScoreSet
	// Goals are recorded alongside the match; they do not change the ranking.
	Goals      []string
	Preference string
}

// Matcher ranks catalog archetypes
type Matcher struct {
	catalog *catalog.Catalog
}

// NewMatcher creates a matcher bound to a catalog
func NewMatcher(c *catalog.Catalog) *Matcher {
	return &Matcher{catalog: c}
}

type candidate struct {
	archetype *models.CoachArchetype
	score     float64
}

// Match returns the two best-fitting archetypes for the request.
// Confidence is the raw weighted score rounded; it is not capped at 100.
func (m *Matcher) Match(req Request) (*models.MatchResult, error) {
	persona, err := m.catalog.Persona(req.PersonaID)
	if err != nil {
		return nil, err
	}

	ranked := m.rank(persona, req.Scores, req.Preference)
	if len(ranked) < catalog.MinArchetypes {
		return nil, &catalog.ConfigurationError{
			Reason: fmt.Sprintf("need at least %d coach archetypes to match, have %d", catalog.MinArchetypes, len(ranked)),
		}
	}

	primary := models.ScoredArchetype{Archetype: ranked[0].archetype, Confidence: confidence(ranked[0].score)}
	secondary := models.ScoredArchetype{Archetype: ranked[1].archetype, Confidence: confidence(ranked[1].score)}

	rationale, err := m.rationale(persona, req.Scores, primary.Archetype, secondary.Archetype)
	if err != nil {
		return nil, err
	}

	return &models.MatchResult{
		PrimaryArchetype:   primary,
		SecondaryArchetype: secondary,
		Rationale:          rationale,
		NextSteps:          append([]string(nil), primary.Archetype.NextSteps...),
		Confidence:         primary.Confidence,
	}, nil
}

// rank scores every archetype and sorts descending, catalog order breaking ties
func (m *Matcher) rank(persona *models.Persona, scores models.ScoreSet, preference string) []candidate {
	candidates := make([]candidate, 0, len(m.catalog.Archetypes))
	for i := range m.catalog.Archetypes {
		archetype := &m.catalog.Archetypes[i]
		candidates = append(candidates, candidate{
			archetype: archetype,
			score:     archetypeScore(archetype, persona, scores, preference),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	return candidates
}

// archetypeScore is the persona-weighted sum over the archetype's constructs,
// then the persona bonus, then the preference bonus
func archetypeScore(archetype *models.CoachArchetype, persona *models.Persona, scores models.ScoreSet, preference string) float64 {
	score := 0.0
	for _, construct := range archetype.Constructs {
		score += persona.Weight(construct) * float64(scores[construct])
	}
	score *= persona.Bonus(archetype.ID)
	if preference != "" && preference == archetype.ID {
		score *= PreferenceBonus
	}
	return score
}

func confidence(score float64) int {
	return scoring.RoundHalfUp(score / 100 * 100)
}

func (m *Matcher) rationale(persona *models.Persona, scores models.ScoreSet, primary, secondary *models.CoachArchetype) (string, error) {
	label := persona.Label
	if label == "" {
		label = "individual"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Based on your profile as %s, I've matched you with %s as your primary coach. ",
		scoring.WithArticle(label), scoring.WithArticle(primary.Name))

	if tmpl := m.catalog.Rationale(primary.ID); tmpl != nil && primary.Rationale != "" {
		if err := tmpl.Execute(&b, scores.TemplateData()); err != nil {
			return "", fmt.Errorf("failed to render rationale for %s: %w", primary.ID, err)
		}
		b.WriteString(" ")
	}

	fmt.Fprintf(&b, "Your %s as a secondary coach will complement this by addressing %s.",
		secondary.Name, strings.ToLower(secondary.Description))

	return b.String(), nil
}
