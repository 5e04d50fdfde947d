package domain

import (
	"context"
	"time"
)

type Message struct {
	Key   []byte
	Value []byte
}

type PublisherPort interface {
	Publish(ctx context.Context, topic string, msgs ...Message) error
}

type OrderEvent struct {
	OrderID   string      `json:"order_id"`
	Number    string      `json:"number"`
	BuyerID   string      `json:"buyer_id"`
	SellerID  string      `json:"seller_id"`
	From      OrderStatus `json:"from,omitempty"`
	Status    OrderStatus `json:"status"`
	Amount    string      `json:"amount"`
	Currency  string      `json:"currency"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
}

type DisputeEvent struct {
	DisputeID   string        `json:"dispute_id"`
	OrderID     string        `json:"order_id"`
	OpenedBy    string        `json:"opened_by"`
	Reason      string        `json:"reason"`
	Status      DisputeStatus `json:"status"`
	Outcome     string        `json:"outcome,omitempty"`
	SellerShare string        `json:"seller_share,omitempty"`
	BuyerShare  string        `json:"buyer_share,omitempty"`
	ResolverID  string        `json:"resolver_id,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
}

// EventPublisher delivers events after commit. Failures never roll back
// the operation that produced them.
type EventPublisher interface {
	PublishOrder(ctx context.Context, event OrderEvent) error
	PublishDispute(ctx context.Context, event DisputeEvent) error
}
