package model

// DayAvailability pairs a calendar date key with its resolved UTC windows.
type DayAvailability struct {
	Date    string   `json:"date"`
	Windows []Window `json:"windows"`
}
