package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ActorRef identifies who produced the event.
type ActorRef struct {
	UserID  uuid.UUID  `json:"userId"`
	StoreID *uuid.UUID `json:"storeId,omitempty"`
	Role    string     `json:"role,omitempty"`
}

// PayloadEnvelope is the stable payload structure stored in outbox_events.
type PayloadEnvelope struct {
	Version    int             `json:"version"`
	EventID    string          `json:"eventId"`
	OccurredAt time.Time       `json:"occurredAt"`
	Actor      *ActorRef       `json:"actor,omitempty"`
	Data       json.RawMessage `json:"data"`
}

// OrderPlacedData is the event body published when checkout creates orders.
type OrderPlacedData struct {
	OrderID       uuid.UUID `json:"orderId"`
	UserID        uuid.UUID `json:"userId"`
	StoreID       uuid.UUID `json:"storeId"`
	Total         string    `json:"total"`
	PaymentMethod string    `json:"paymentMethod"`
	ItemCount     int       `json:"itemCount"`
}

// CartClearedData is the event body published after a checkout empties the cart.
type CartClearedData struct {
	UserID uuid.UUID `json:"userId"`
}

// UserRegisteredData is the event body published when a new account is created.
type UserRegisteredData struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
}
