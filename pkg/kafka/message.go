package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Message is the envelope published to the booking events topic. Keyed by
// resource id so every event for one therapist lands on the same partition
// in order.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// Header keys shared with downstream consumers (notification service,
// calendar-invite sender).
const (
	HeaderEventID       = "event-id"
	HeaderEventType     = "event-type"
	HeaderSchemaVersion = "schema-version"
	HeaderSource        = "source"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

// NewEvent builds a message carrying a JSON-encoded payload and the
// standard headers.
func NewEvent(eventType, key string, payload any, source string) (Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to encode %s payload: %w", eventType, err)
	}

	return Message{
		Key:   key,
		Value: value,
		Headers: map[string]string{
			HeaderEventID:       uuid.NewString(),
			HeaderEventType:     eventType,
			HeaderSchemaVersion: "1",
			HeaderSource:        source,
		},
		Timestamp: time.Now().UTC(),
	}, nil
}
