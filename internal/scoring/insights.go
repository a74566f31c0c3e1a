package scoring

import (
	"fmt"
	"sort"
	"strings"

	"mindcoach/internal/models"
)

const (
	strengthThreshold    = 70
	developmentThreshold = 50
)

type rankedConstruct struct {
	construct models.Construct
	score     int
}

// rank orders constructs by descending score, keeping enumeration order for ties
func rank(scores models.ScoreSet) []rankedConstruct {
	ranked := make([]rankedConstruct, 0, len(models.AllConstructs))
	for _, c := range models.AllConstructs {
		ranked = append(ranked, rankedConstruct{construct: c, score: scores[c]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	return ranked
}

// GetInsights derives strengths, development areas and extremes from a score set
func GetInsights(scores models.ScoreSet) models.Insights {
	ranked := rank(scores)

	insights := models.Insights{
		Strengths:        []string{},
		DevelopmentAreas: []string{},
		TopConstruct:     ranked[0].construct.Label(),
		LowestConstruct:  ranked[len(ranked)-1].construct.Label(),
	}
	for _, r := range ranked {
		if r.score >= strengthThreshold {
			insights.Strengths = append(insights.Strengths, r.construct.Label())
		}
		if r.score < developmentThreshold {
			insights.DevelopmentAreas = append(insights.DevelopmentAreas, r.construct.Label())
		}
	}
	return insights
}

// PersonalityInsight composes a short narrative from the score set and persona.
// A nil persona falls back to generic wording.
func PersonalityInsight(scores models.ScoreSet, persona *models.Persona) string {
	insights := GetInsights(scores)

	label := "individual"
	growth := "academic performance"
	if persona != nil {
		if persona.InsightLabel != "" {
			label = persona.InsightLabel
		}
		if persona.GrowthFocus != "" {
			growth = persona.GrowthFocus
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "As %s, your strongest area is %s, which is excellent for your role. ",
		WithArticle(label), strings.ToLower(insights.TopConstruct))

	if len(insights.DevelopmentAreas) > 0 {
		fmt.Fprintf(&b, "You have opportunities to grow in %s, which will significantly enhance your %s. ",
			strings.ToLower(strings.Join(insights.DevelopmentAreas, " and ")), growth)
	}

	if len(insights.Strengths) > 1 {
		fmt.Fprintf(&b, "Your combination of strengths in %s gives you a solid foundation to build upon.",
			strings.ToLower(strings.Join(insights.Strengths[:2], " and ")))
	}

	return strings.TrimSpace(b.String())
}
