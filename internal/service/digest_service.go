package service

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"mindcoach/internal/metrics"
)

// DigestSummary counts the outcome of one digest run
type DigestSummary struct {
	Sent    int64 `json:"sent"`
	Skipped int64 `json:"skipped"`
	Failed  int64 `json:"failed"`
}

// DigestService sends the weekly progress e-mail to every opted-in user
type DigestService struct {
	states      *StateService
	practice    *PracticeService
	email       *EmailService
	metrics     *metrics.Metrics
	concurrency int
}

// NewDigestService creates a digest service sending at most concurrency e-mails at once
func NewDigestService(states *StateService, practice *PracticeService, email *EmailService, m *metrics.Metrics, concurrency int) *DigestService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &DigestService{
		states:      states,
		practice:    practice,
		email:       email,
		metrics:     m,
		concurrency: concurrency,
	}
}

// Run sends the digest. Individual send failures are counted, not returned.
func (s *DigestService) Run(ctx context.Context) (*DigestSummary, error) {
	userIDs, err := s.states.UserIDs(ctx)
	if err != nil {
		return nil, err
	}

	var summary DigestSummary
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, userID := range userIDs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcome, err := s.sendOne(gctx, userID)
			s.metrics.EmailSent(outcome)
			switch outcome {
			case "sent":
				atomic.AddInt64(&summary.Sent, 1)
			case "skipped":
				atomic.AddInt64(&summary.Skipped, 1)
			default:
				atomic.AddInt64(&summary.Failed, 1)
				log.Printf("Digest for %s failed: %v", userID, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return &summary, fmt.Errorf("digest run interrupted: %w", err)
	}

	log.Printf("Weekly digest finished: sent=%d skipped=%d failed=%d", summary.Sent, summary.Skipped, summary.Failed)
	return &summary, nil
}

func (s *DigestService) sendOne(ctx context.Context, userID string) (string, error) {
	current, err := s.states.Get(ctx, userID)
	if err != nil {
		return "failed", err
	}
	if !current.NotificationsEnabled || current.ContactEmail == "" || !s.email.IsEnabled() {
		return "skipped", nil
	}

	if err := s.email.SendWeeklyDigest(ctx, current.ContactEmail, s.practice.ReportFor(current)); err != nil {
		return "failed", err
	}
	return "sent", nil
}
