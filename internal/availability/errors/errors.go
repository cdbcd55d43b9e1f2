package errors

import "errors"

var (
	ErrHoursNotFound = errors.New("recurring hours not found")

	ErrOverrideNotFound = errors.New("date override not found")

	ErrWindowNotFound = errors.New("time window not found")

	ErrInvalidID = errors.New("invalid availability record ID format")
)
