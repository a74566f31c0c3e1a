package validation

import (
	"fmt"
	"regexp"
	"strings"

	"mindcoach/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const (
	MinHappiness = 0
	MaxHappiness = 10
	MaxGoals     = 10
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidateAnswers checks a quiz submission: Likert values in range and each question answered once.
// Question ids unknown to the catalog are allowed here; scoring drops them.
func ValidateAnswers(answers []models.Answer) error {
	seen := make(map[string]struct{}, len(answers))
	for i, a := range answers {
		field := fmt.Sprintf("answers[%d]", i)
		if strings.TrimSpace(a.QuestionID) == "" {
			return ValidationError{Field: field, Message: "questionId is required"}
		}
		if a.Value < models.LikertMin || a.Value > models.LikertMax {
			return ValidationError{Field: field, Message: fmt.Sprintf("value must be between %d and %d", models.LikertMin, models.LikertMax)}
		}
		if _, dup := seen[a.QuestionID]; dup {
			return ValidationError{Field: field, Message: fmt.Sprintf("duplicate questionId %q", a.QuestionID)}
		}
		seen[a.QuestionID] = struct{}{}
	}
	return nil
}

// ValidatePersonaID checks a persona id is present
func ValidatePersonaID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ValidationError{Field: "persona", Message: "persona is required"}
	}
	return nil
}

// ValidateScores checks an externally supplied score set
func ValidateScores(scores models.ScoreSet) error {
	if scores == nil {
		return ValidationError{Field: "scores", Message: "scores are required"}
	}
	if err := scores.Validate(); err != nil {
		return ValidationError{Field: "scores", Message: err.Error()}
	}
	return nil
}

// ValidateGoals limits the number of onboarding goals and rejects blanks
func ValidateGoals(goals []string) error {
	if len(goals) > MaxGoals {
		return ValidationError{Field: "goals", Message: fmt.Sprintf("at most %d goals allowed", MaxGoals)}
	}
	for _, g := range goals {
		if strings.TrimSpace(g) == "" {
			return ValidationError{Field: "goals", Message: "goal must not be empty"}
		}
	}
	return nil
}

// ValidateHappiness checks a 0-10 self-report value
func ValidateHappiness(field string, value float64) error {
	if value < MinHappiness || value > MaxHappiness {
		return ValidationError{Field: field, Message: fmt.Sprintf("%s must be between %d and %d", field, MinHappiness, MaxHappiness)}
	}
	return nil
}

// ValidateRating checks an optional 1-5 session rating
func ValidateRating(rating *int) error {
	if rating == nil {
		return nil
	}
	if *rating < models.LikertMin || *rating > models.LikertMax {
		return ValidationError{Field: "rating", Message: fmt.Sprintf("rating must be between %d and %d", models.LikertMin, models.LikertMax)}
	}
	return nil
}

// ValidateRequired checks a non-blank string field
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	return nil
}
