package events

import (
	"context"

	interfaces "github.com/sheikh-saqib/cash-drawer-planner/internal/interfaces"
)

// NopPublisher drops every event; used when no brokers are configured
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, topic string, event any) error {
	return nil
}

var _ interfaces.EventPublisher = NopPublisher{}
