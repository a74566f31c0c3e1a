package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mindcoach/internal/catalog"
	"mindcoach/internal/matching"
	"mindcoach/internal/models"
	"mindcoach/internal/service"
)

var scoreCmd = &cobra.Command{
	Use:   "score q1=5 q2=3 ...",
	Short: "Score quiz answers offline and show the coach match",
	Long: `Score quiz answers against the catalog without touching the database.

Each argument is questionId=value with value 1-5. With --persona the
personality insight and coach match for that persona are printed too.`,
	Example: `  coachctl score q3=5 q4=1 --persona students
  coachctl score q1=4 q2=2 --persona leaders --preference clarity`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringP("persona", "p", "", "Persona id for insight and matching")
	scoreCmd.Flags().String("preference", "", "Preferred archetype id")
	scoreCmd.Flags().String("catalog", "", "Catalog YAML file (default: built-in)")
	rootCmd.AddCommand(scoreCmd)
}

type scoreOutput struct {
	*service.ScoreResult
	Match *models.MatchResult `json:"match,omitempty"`
}

func runScore(cmd *cobra.Command, args []string) error {
	personaID, _ := cmd.Flags().GetString("persona")
	preference, _ := cmd.Flags().GetString("preference")
	catalogPath, _ := cmd.Flags().GetString("catalog")

	answers, err := parseAnswers(args)
	if err != nil {
		return err
	}

	c, err := catalog.Load(catalogPath)
	if err != nil {
		return err
	}
	assessment := service.NewAssessmentService(c, nil, nil, nil)

	scored, err := assessment.Score(cmd.Context(), "", answers, personaID)
	if err != nil {
		return err
	}
	out := scoreOutput{ScoreResult: scored}

	if personaID != "" {
		out.Match, err = assessment.Match(cmd.Context(), "", matching.Request{
			PersonaID:  personaID,
			Scores:     scored.Scores,
			Preference: preference,
		})
		if err != nil {
			return err
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// parseAnswers reads questionId=value pairs
func parseAnswers(args []string) ([]models.Answer, error) {
	answers := make([]models.Answer, 0, len(args))
	for _, arg := range args {
		id, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("answer %q: expected questionId=value", arg)
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("answer %q: %w", arg, err)
		}
		answers = append(answers, models.Answer{QuestionID: strings.TrimSpace(id), Value: value})
	}
	return answers, nil
}
