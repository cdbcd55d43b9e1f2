package model

import "time"

// BookingLock is an advisory lock held while a booking slot is validated
// and inserted. The _id is derived from the resource id, so a second
// writer for the same resource hits a duplicate-key error instead of
// racing the overlap check, whatever its start time. A TTL index on
// expires_at reaps locks abandoned by crashed writers.
type BookingLock struct {
	ID        string    `json:"id" bson:"_id"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
