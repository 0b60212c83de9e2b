package domain

import "time"

// EventName is the routing key of a post-commit notification.
type EventName string

const (
	EventOrderCreated       EventName = "order:created"
	EventKOTUpdated         EventName = "kot:updated"
	EventBillFinalized      EventName = "bill:finalized"
	EventVoucherRedeemed    EventName = "voucher:redeemed"
	EventTransactionCreated EventName = "transaction:created"
	EventTransactionUpdated EventName = "transaction:updated"
)

// Event is published after the change it describes has been committed.
type Event struct {
	Name       EventName `json:"name"`
	HotelID    string    `json:"hotelID"`
	EntityID   string    `json:"entityID"`
	ActorID    string    `json:"actorID"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurredAt"`
}
