package events

import (
	"context"
	"log/slog"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
)

// LogPublisher writes events to the application log. Used when no broker is
// configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event domain.Event) error {
	p.logger.InfoContext(ctx, "Domain event",
		slog.String("event", string(event.Name)),
		slog.String("hotel_id", event.HotelID),
		slog.String("entity_id", event.EntityID),
		slog.String("actor_id", event.ActorID),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
