package model

import (
	"time"

	"clinicbook/pkg/config"
)

// RecurringHours is the weekly pattern for one location and weekday. There
// is at most one document per (location_id, weekday); enabling a weekday
// reuses the existing document and flips is_active instead of duplicating.
type RecurringHours struct {
	ID         string         `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	LocationID string         `json:"location_id" bson:"location_id" validate:"required,min=1,max=64"`
	Weekday    config.Weekday `json:"weekday" bson:"weekday" validate:"required,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	IsActive   bool           `json:"is_active" bson:"is_active"`
	Windows    []DayWindow    `json:"windows" bson:"windows" validate:"omitempty,dive"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt  time.Time      `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// ActiveWindows returns only windows that currently count toward
// availability.
func (rh *RecurringHours) ActiveWindows() []DayWindow {
	out := make([]DayWindow, 0, len(rh.Windows))
	for _, w := range rh.Windows {
		if w.IsActive {
			out = append(out, w)
		}
	}
	return out
}

// HoursUpsert is the API shape for enabling or disabling a weekday.
type HoursUpsert struct {
	LocationID string         `json:"location_id" validate:"required,min=1,max=64"`
	Weekday    config.Weekday `json:"weekday" validate:"required,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	IsActive   bool           `json:"is_active"`
}
