package domain

import "time"

// Event names published after a committed ledger operation.
const (
	EventDepositCompleted  = "DEPOSIT_COMPLETED"
	EventTransferCompleted = "TRANSFER_COMPLETED"
	EventReversalCompleted = "REVERSAL_COMPLETED"
)

// Event is the payload handed to the event sink after commit. Delivery is
// best-effort: a failed publish never affects the committed ledger state.
// Monetary values in Data are minor units.
type Event struct {
	Event     string         `json:"event"`
	Timestamp string         `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// NewEvent builds an event stamped with the current UTC time.
func NewEvent(name string, data map[string]any) Event {
	return Event{
		Event:     name,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      data,
	}
}
