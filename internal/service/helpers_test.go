package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mindcoach/internal/catalog"
	"mindcoach/internal/database"
	"mindcoach/internal/event"
	"mindcoach/internal/models"
	"mindcoach/internal/repository"
)

// recordingPublisher keeps published envelopes in memory
type recordingPublisher struct {
	mu     sync.Mutex
	events []*event.Envelope
}

func (p *recordingPublisher) Publish(_ context.Context, e *event.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType
	}
	return out
}

type testEnv struct {
	db         *database.DB
	catalog    *catalog.Catalog
	publisher  *recordingPublisher
	states     *StateService
	assessment *AssessmentService
	practice   *PracticeService
	now        time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "service.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations(context.Background(), ""))

	c, err := catalog.Default()
	require.NoError(t, err)

	env := &testEnv{
		db:        db,
		catalog:   c,
		publisher: &recordingPublisher{},
		now:       time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC),
	}

	env.states, err = NewStateService(repository.NewStateRepository(db), 16, time.Minute, env.publisher, nil, time.UTC)
	require.NoError(t, err)
	env.states.now = func() time.Time { return env.now }

	env.assessment = NewAssessmentService(c, env.states, env.publisher, nil)
	env.practice = NewPracticeService(c, env.states)
	return env
}

// allHighAnswers answers every catalog item at the top of its construct
func allHighAnswers(c *catalog.Catalog) []models.Answer {
	answers := make([]models.Answer, 0, len(c.QuizItems))
	for _, item := range c.QuizItems {
		value := models.LikertMax
		if item.Reverse {
			value = models.LikertMin
		}
		answers = append(answers, models.Answer{QuestionID: item.ID, Value: value})
	}
	return answers
}
