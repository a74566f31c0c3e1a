package models

// QuizItem is a single Likert questionnaire item
type QuizItem struct {
	ID        string    `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	Construct Construct `json:"construct" yaml:"construct"`
	Reverse   bool      `json:"reverse" yaml:"reverse"`
}

// Likert bounds for answer values
const (
	LikertMin = 1
	LikertMax = 5
)

// Answer is the user's response to one quiz item
type Answer struct {
	QuestionID string `json:"questionId"`
	Value      int    `json:"value"`
}

// Insights summarises a score set
type Insights struct {
	Strengths        []string `json:"strengths"`
	DevelopmentAreas []string `json:"developmentAreas"`
	TopConstruct     string   `json:"topConstruct"`
	LowestConstruct  string   `json:"lowestConstruct"`
}
