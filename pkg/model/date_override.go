package model

import "time"

// DateOverride supersedes recurring hours for an inclusive calendar date
// range. Dates are stored as "2006-01-02" strings: zero-padded ISO dates
// order lexicographically, so range intersection is a plain comparison in
// both Go and Mongo queries.
//
// Precedence is total: a covered date takes its availability only from the
// override, even when the override is open with zero windows. Overrides
// model one-off exceptions and never fall back to the weekly default.
type DateOverride struct {
	ID         string      `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	LocationID string      `json:"location_id" bson:"location_id" validate:"required,min=1,max=64"`
	StartDate  string      `json:"start_date" bson:"start_date" validate:"required,datekey"`
	EndDate    string      `json:"end_date" bson:"end_date" validate:"required,datekey"`
	IsClosed   bool        `json:"is_closed" bson:"is_closed"`
	Reason     string      `json:"reason,omitempty" bson:"reason,omitempty" validate:"omitempty,max=200"`
	Windows    []DayWindow `json:"windows" bson:"windows" validate:"omitempty,dive"`
	CreatedAt  time.Time   `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt  time.Time   `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

func (o *DateOverride) ActiveWindows() []DayWindow {
	out := make([]DayWindow, 0, len(o.Windows))
	for _, w := range o.Windows {
		if w.IsActive {
			out = append(out, w)
		}
	}
	return out
}

// Covers reports whether the inclusive range contains the date key.
func (o *DateOverride) Covers(dateKey string) bool {
	return o.StartDate <= dateKey && dateKey <= o.EndDate
}

// Intersects reports whether two inclusive date ranges share any day.
func (o *DateOverride) Intersects(startDate, endDate string) bool {
	return o.StartDate <= endDate && startDate <= o.EndDate
}

// DateOverridePatch carries a partial override edit. Nil fields keep the
// stored value.
type DateOverridePatch struct {
	StartDate *string `json:"start_date,omitempty" validate:"omitempty,datekey"`
	EndDate   *string `json:"end_date,omitempty" validate:"omitempty,datekey"`
	IsClosed  *bool   `json:"is_closed,omitempty"`
	Reason    *string `json:"reason,omitempty" validate:"omitempty,max=200"`
}
