package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	availerrors "clinicbook/internal/availability/errors"
	"clinicbook/internal/availability/repository"
	"clinicbook/pkg/config"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/model"
	"clinicbook/pkg/sanitizer"
	"clinicbook/pkg/wallclock"
)

// ResolverService answers "which UTC windows are bookable at this location
// on this calendar date". Overrides win over recurring hours outright: a
// covering override that is closed, or open with no active windows, makes
// the date empty even when recurring hours exist for its weekday.
type ResolverService interface {
	Resolve(ctx context.Context, locationID string, date wallclock.Date, tz string) ([]model.Window, error)
	ResolveRange(ctx context.Context, locationID string, from, to wallclock.Date, tz string) ([]model.DayAvailability, error)
}

type resolverService struct {
	hoursRepo    repository.RecurringHoursRepository
	overrideRepo repository.DateOverrideRepository
	cfg          *config.Config
}

func NewResolverService(
	hoursRepo repository.RecurringHoursRepository,
	overrideRepo repository.DateOverrideRepository,
	cfg *config.Config,
) ResolverService {
	return &resolverService{
		hoursRepo:    hoursRepo,
		overrideRepo: overrideRepo,
		cfg:          cfg,
	}
}

func (s *resolverService) Resolve(ctx context.Context, locationID string, date wallclock.Date, tz string) ([]model.Window, error) {
	locationID = sanitizer.NormalizeID(locationID)
	if locationID == "" {
		return nil, apperrors.InvalidInput("Location ID cannot be empty")
	}
	if date.IsZero() {
		return nil, apperrors.InvalidInput("Date cannot be empty")
	}
	tz = s.timezoneOrDefault(tz)

	override, err := s.overrideRepo.FindCovering(ctx, locationID, date.String())
	switch {
	case err == nil:
		if override.IsClosed {
			return []model.Window{}, nil
		}
		return s.toUTCWindows(override.ActiveWindows(), date, tz)
	case errors.Is(err, availerrors.ErrOverrideNotFound):
		// fall through to recurring hours
	default:
		return nil, apperrors.Internal("Failed to look up date overrides", err)
	}

	hours, err := s.hoursRepo.FindByLocationAndWeekday(ctx, locationID, config.WeekdayOf(date.Weekday()))
	if err != nil {
		if errors.Is(err, availerrors.ErrHoursNotFound) {
			return []model.Window{}, nil
		}
		return nil, apperrors.Internal("Failed to look up recurring hours", err)
	}
	if !hours.IsActive {
		return []model.Window{}, nil
	}
	return s.toUTCWindows(hours.ActiveWindows(), date, tz)
}

func (s *resolverService) ResolveRange(ctx context.Context, locationID string, from, to wallclock.Date, tz string) ([]model.DayAvailability, error) {
	if from.IsZero() || to.IsZero() {
		return nil, apperrors.InvalidInput("Range dates cannot be empty")
	}
	if from.After(to) {
		return nil, apperrors.InvalidInput("Range start date must not be after end date")
	}
	days := from.DaysUntil(to) + 1
	if days > s.cfg.MaxRangeDays {
		return nil, apperrors.InvalidInput(fmt.Sprintf(
			"Date range spans %d days, maximum is %d", days, s.cfg.MaxRangeDays,
		))
	}

	result := make([]model.DayAvailability, 0, days)
	for d := from; !d.After(to); d = d.AddDays(1) {
		windows, err := s.Resolve(ctx, locationID, d, tz)
		if err != nil {
			return nil, err
		}
		result = append(result, model.DayAvailability{
			Date:    d.String(),
			Windows: windows,
		})
	}
	return result, nil
}

func (s *resolverService) timezoneOrDefault(tz string) string {
	if tz == "" {
		return s.cfg.DefaultTimezone
	}
	return tz
}

// toUTCWindows converts HH:MM spans to UTC instants for the given date.
// Each edge is interpreted at that date's local offset, so a day spanning
// a DST transition keeps its wall-clock boundaries rather than shifting
// by a fixed UTC offset.
func (s *resolverService) toUTCWindows(windows []model.DayWindow, date wallclock.Date, tz string) ([]model.Window, error) {
	result := make([]model.Window, 0, len(windows))
	for _, w := range windows {
		start, err := wallclock.ToUTC(date, w.StartLocal, tz)
		if err != nil {
			return nil, mapWallclockError(err, w.StartLocal, tz)
		}
		end, err := wallclock.ToUTC(date, w.EndLocal, tz)
		if err != nil {
			return nil, mapWallclockError(err, w.EndLocal, tz)
		}
		result = append(result, model.Window{Start: start, End: end})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Start.Before(result[j].Start)
	})
	return result, nil
}

func mapWallclockError(err error, clock, tz string) error {
	switch {
	case errors.Is(err, wallclock.ErrInvalidLocalTime):
		return apperrors.InvalidLocalTime(fmt.Sprintf(
			"Local time %s does not exist in %s on that date", clock, tz,
		))
	case errors.Is(err, wallclock.ErrUnknownZone):
		return apperrors.InvalidInput("Unknown timezone: " + tz)
	case errors.Is(err, wallclock.ErrInvalidClock):
		return apperrors.InvalidInput("Invalid local time: " + clock)
	default:
		return apperrors.Internal("Failed to convert local time", err)
	}
}

func dateKeyOrError(s string) (wallclock.Date, error) {
	d, err := wallclock.ParseDate(s)
	if err != nil {
		return wallclock.Date{}, apperrors.InvalidInput("Invalid date, expected YYYY-MM-DD: " + s)
	}
	return d, nil
}
