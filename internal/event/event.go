package event

import (
	"time"

	"github.com/google/uuid"
)

// Routing keys for assessment events; state transitions publish "state.<event name>"
const (
	QuizScored   = "quiz.scored"
	CoachMatched = "coach.matched"
	StatePrefix  = "state."
)

// Envelope wraps every published payload
type Envelope struct {
	EventID    string    `json:"eventId"`
	EventType  string    `json:"eventType"`
	UserID     string    `json:"userId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// NewEnvelope stamps a payload with a fresh id and the current time
func NewEnvelope(eventType, userID string, payload any) *Envelope {
	return &Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}
