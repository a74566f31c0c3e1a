package service

import (
	"context"
	"log"

	"mindcoach/internal/event"
	"mindcoach/internal/metrics"
)

// publish sends an event without failing the caller; broker problems are logged and counted
func publish(ctx context.Context, p event.Publisher, m *metrics.Metrics, eventType, userID string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event.NewEnvelope(eventType, userID, payload)); err != nil {
		log.Printf("Warning: %v", err)
		m.PublishFailed()
	}
}
