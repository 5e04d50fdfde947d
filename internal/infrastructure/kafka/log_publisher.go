package publisher

import (
	"context"
	"log/slog"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

// LogPublisher is used when Kafka is disabled. Events end up in the
// service log only.
type LogPublisher struct {
	log *slog.Logger
}

func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) PublishOrder(ctx context.Context, event domain.OrderEvent) error {
	p.log.InfoContext(ctx, "order event",
		"order_id", event.OrderID,
		"from", event.From,
		"status", event.Status,
		"actor_id", event.ActorID,
	)
	return nil
}

func (p *LogPublisher) PublishDispute(ctx context.Context, event domain.DisputeEvent) error {
	p.log.InfoContext(ctx, "dispute event",
		"dispute_id", event.DisputeID,
		"order_id", event.OrderID,
		"status", event.Status,
		"outcome", event.Outcome,
	)
	return nil
}
