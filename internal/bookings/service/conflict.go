package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicbook/internal/bookings/repository"
	"clinicbook/pkg/config"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/model"
	"clinicbook/pkg/wallclock"
)

// AvailabilityResolver yields the bookable UTC windows for a location and
// calendar date. The availability resolver service satisfies it directly;
// both services share one Mongo deployment, so the conflict check can run
// it inside the booking transaction.
type AvailabilityResolver interface {
	Resolve(ctx context.Context, locationID string, date wallclock.Date, tz string) ([]model.Window, error)
}

// ConflictChecker decides whether a candidate slot can be booked: the
// interval must sit fully inside one resolved window, and no non-cancelled
// booking for the resource may overlap it.
type ConflictChecker struct {
	resolver AvailabilityResolver
	repo     repository.BookingRepository
	cfg      *config.Config
}

func NewConflictChecker(
	resolver AvailabilityResolver,
	repo repository.BookingRepository,
	cfg *config.Config,
) *ConflictChecker {
	return &ConflictChecker{
		resolver: resolver,
		repo:     repo,
		cfg:      cfg,
	}
}

// CheckSlot returns nil when [start, start+duration) is bookable. The
// candidate must be fully contained in a resolved window; merely
// overlapping one is rejected. The overlap test against existing bookings
// is half-open, so a candidate starting exactly at another booking's end
// passes.
func (c *ConflictChecker) CheckSlot(ctx context.Context, resourceID, locationID string, start time.Time, durationMinutes int, tz string) error {
	if durationMinutes <= 0 {
		return apperrors.InvalidInput("Duration must be positive")
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	date, err := wallclock.DateKey(start, tz)
	if err != nil {
		if errors.Is(err, wallclock.ErrUnknownZone) {
			return apperrors.InvalidInput("Unknown timezone: " + tz)
		}
		return apperrors.Internal("Failed to compute booking date", err)
	}

	windows, err := c.resolver.Resolve(ctx, locationID, date, tz)
	if err != nil {
		return err
	}

	contained := false
	for _, w := range windows {
		if w.Contains(start, end) {
			contained = true
			break
		}
	}
	if !contained {
		return apperrors.OutsideAvailability(fmt.Sprintf(
			"Requested slot %s - %s is outside the location's bookable hours on %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339), date,
		))
	}

	existing, err := c.repo.FindOverlapping(ctx, resourceID, start, end, c.cfg.OverlapScanLimit)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}
	if len(existing) > 0 {
		return apperrors.SlotTaken(fmt.Sprintf(
			"Requested slot overlaps an existing booking (%s - %s)",
			existing[0].StartTime.Format(time.RFC3339),
			existing[0].EndTime.Format(time.RFC3339),
		))
	}
	return nil
}
