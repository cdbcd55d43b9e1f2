package model

import "time"

// Booking occupies [StartTime, EndTime) for one therapist. EndTime is
// derived from the duration at write time and stored so overlap queries
// stay index-friendly. Bookings are never deleted; cancellation flips the
// status and frees the interval.
type Booking struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ResourceID      string    `json:"resource_id" bson:"resource_id" validate:"required,min=1,max=64"`
	LocationID      string    `json:"location_id" bson:"location_id" validate:"required,min=1,max=64"`
	StartTime       time.Time `json:"start_time" bson:"start_time" validate:"required"`
	EndTime         time.Time `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	DurationMinutes int       `json:"duration_minutes" bson:"duration_minutes" validate:"required,min=5,max=480"`
	Status          string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed in_progress completed cancelled no_show"`
	Timezone        string    `json:"timezone" bson:"timezone" validate:"required,timezone"`
	Patient         Patient   `json:"patient" bson:"patient"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type Patient struct {
	Name  string `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
}

// BookingRequest is the single typed creation shape. The API boundary
// normalizes whatever the wizard sends into this; the core never inspects
// duck-typed payloads. Start is wall-clock local: date plus "HH:MM" in the
// location's zone.
type BookingRequest struct {
	ResourceID      string  `json:"resource_id" validate:"omitempty,min=1,max=64"`
	LocationID      string  `json:"location_id" validate:"required,min=1,max=64"`
	Date            string  `json:"date" validate:"required,datekey"`
	StartLocal      string  `json:"start_local" validate:"required,wallclock"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=5,max=480"`
	Timezone        string  `json:"timezone" validate:"omitempty,timezone"`
	Patient         Patient `json:"patient"`
}
