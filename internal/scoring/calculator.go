// Package scoring turns Likert quiz answers into construct scores and insights.
package scoring

import (
	"mindcoach/internal/catalog"
	"mindcoach/internal/models"
)

// Calculator scores answers against a quiz item catalog
type Calculator struct {
	catalog *catalog.Catalog
}

// NewCalculator creates a calculator bound to a catalog
func NewCalculator(c *catalog.Catalog) *Calculator {
	return &Calculator{catalog: c}
}

// CalculateScores maps raw answers to a normalized 0-100 score per construct.
// Answers for unknown question ids are ignored. Constructs without answers score 0.
func (c *Calculator) CalculateScores(answers []models.Answer) models.ScoreSet {
	grouped := make(map[models.Construct][]int)

	for _, answer := range answers {
		item, ok := c.catalog.QuizItem(answer.QuestionID)
		if !ok {
			continue
		}
		value := answer.Value
		if item.Reverse {
			value = models.LikertMax + models.LikertMin - value
		}
		grouped[item.Construct] = append(grouped[item.Construct], value)
	}

	scores := models.NewScoreSet()
	for construct, values := range grouped {
		if _, ok := scores[construct]; !ok {
			continue
		}
		scores[construct] = normalize(values)
	}

	return scores
}

// normalize maps the mean of 1-5 values linearly onto 0-100
func normalize(values []int) int {
	sum := 0
	for _, v := range values {
		sum += v
	}
	mean := float64(sum) / float64(len(values))
	span := float64(models.LikertMax - models.LikertMin)
	return clampScore(RoundHalfUp((mean - models.LikertMin) / span * 100))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
