package services

import (
	"context"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
)

// EventPublisher delivers post-commit notifications to dashboards.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
	Close() error
}
