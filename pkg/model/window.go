package model

import "time"

// Window is a resolved bookable interval in UTC. The end instant itself is
// not occupied, so back-to-back bookings are allowed.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether [start, end) lies fully inside the window.
func (w Window) Contains(start, end time.Time) bool {
	return !start.Before(w.Start) && !end.After(w.End)
}

// DayWindow is a wall-clock window embedded in a recurring-hours or
// override document. Start and end are "HH:MM" local times; the parent
// record's location decides the timezone at resolution time.
type DayWindow struct {
	ID         string `json:"id,omitempty" bson:"id,omitempty" validate:"omitempty,uuid4"`
	StartLocal string `json:"start_local" bson:"start_local" validate:"required,wallclock"`
	EndLocal   string `json:"end_local" bson:"end_local" validate:"required,wallclock"`
	IsActive   bool   `json:"is_active" bson:"is_active"`
}

// SameSpan reports whether two windows share the natural key used for
// idempotent creation.
func (w DayWindow) SameSpan(o DayWindow) bool {
	return w.StartLocal == o.StartLocal && w.EndLocal == o.EndLocal
}

// DayWindowPatch carries a partial window edit.
type DayWindowPatch struct {
	StartLocal *string `json:"start_local,omitempty" validate:"omitempty,wallclock"`
	EndLocal   *string `json:"end_local,omitempty" validate:"omitempty,wallclock"`
	IsActive   *bool   `json:"is_active,omitempty"`
}
