// Package events delivers care events to Kafka, or to the log when no broker
// is configured.
package events

import (
	"context"
	"log/slog"

	"plantcare/internal/platform/metrics"
	"plantcare/pkg/care"
	"plantcare/pkg/requestcontext"
)

// Publisher delivers care events.
type Publisher interface {
	Publish(ctx context.Context, event care.Event) error
}

// Emitter stamps events and hands them to a Publisher. Delivery is best
// effort: a publish failure is logged and counted, never returned to the
// caller whose write already succeeded.
type Emitter struct {
	publisher Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewEmitter(publisher Publisher, logger *slog.Logger, m *metrics.Metrics) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{publisher: publisher, logger: logger, metrics: m}
}

// Emit is safe on a nil Emitter.
func (e *Emitter) Emit(ctx context.Context, event care.Event) {
	if e == nil || e.publisher == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = requestcontext.Now(ctx)
	}
	err := e.publisher.Publish(ctx, event)
	e.metrics.IncrementEventPublished(string(event.Type), err)
	if err != nil {
		e.logger.WarnContext(ctx, "failed to publish care event",
			"type", event.Type,
			"entity_id", event.EntityID,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}

// LogPublisher writes events to a structured logger.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event care.Event) error {
	p.logger.InfoContext(ctx, "care event",
		"type", event.Type,
		"entity_id", event.EntityID,
		"plant_id", event.PlantID,
		"detail", event.Detail,
		"occurred_at", event.OccurredAt,
	)
	return nil
}
