package config

import "time"

// Weekday names match time.Weekday.String() so recurring hours documents
// stay readable in the database.
type Weekday string

const (
	Sunday    Weekday = "Sunday"
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
)

var Weekdays = []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

func WeekdayOf(d time.Weekday) Weekday {
	return Weekday(d.String())
}

func (w Weekday) Valid() bool {
	for _, d := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

// Booking lifecycle statuses. Bookings are never hard-deleted; cancellation
// is a status transition and only non-cancelled bookings occupy time.
const (
	Pending    = "pending"
	Confirmed  = "confirmed"
	InProgress = "in_progress"
	Completed  = "completed"
	Cancelled  = "cancelled"
	NoShow     = "no_show"
)
