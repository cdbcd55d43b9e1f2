package service

import (
	"context"
	"errors"

	availerrors "clinicbook/internal/availability/errors"
	"clinicbook/internal/availability/repository"
	"clinicbook/internal/availability/validator"
	"clinicbook/pkg/config"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/model"
	"clinicbook/pkg/sanitizer"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

type HoursService interface {
	Upsert(ctx context.Context, up *model.HoursUpsert) (*model.RecurringHours, error)
	Get(ctx context.Context, locationID string, weekday config.Weekday) (*model.RecurringHours, error)
	List(ctx context.Context, locationID string) ([]*model.RecurringHours, error)
	ListActive(ctx context.Context, locationID string) ([]*model.RecurringHours, error)
	AddWindow(ctx context.Context, locationID string, weekday config.Weekday, window model.DayWindow) (*model.DayWindow, error)
	UpdateWindow(ctx context.Context, locationID string, weekday config.Weekday, windowID string, patch *model.DayWindowPatch) (*model.DayWindow, error)
	RemoveWindow(ctx context.Context, locationID string, weekday config.Weekday, windowID string) error
}

type hoursService struct {
	repo      repository.RecurringHoursRepository
	validator *validator.AvailabilityValidator
	cfg       *config.Config
}

func NewHoursService(
	repo repository.RecurringHoursRepository,
	validator *validator.AvailabilityValidator,
	cfg *config.Config,
) HoursService {
	return &hoursService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

// Upsert enables or disables a weekday. The (location, weekday) pair is
// unique: an existing document gets its flag flipped, a missing one is
// created with no windows. Running the same upsert twice is a no-op.
func (s *hoursService) Upsert(ctx context.Context, up *model.HoursUpsert) (*model.RecurringHours, error) {
	up.LocationID = sanitizer.NormalizeID(up.LocationID)
	if err := s.validator.ValidateHoursUpsert(up); err != nil {
		s.cfg.Log.Warn("Hours upsert validation failed", "error", err)
		return nil, apperrors.Validation("Invalid recurring hours input", map[string]any{"error": err.Error()})
	}

	var result *model.RecurringHours
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByLocationAndWeekday(sessCtx, up.LocationID, up.Weekday)
		switch {
		case err == nil:
			if existing.IsActive != up.IsActive {
				if err := s.repo.SetActive(sessCtx, existing.ID, up.IsActive); err != nil {
					return apperrors.Internal("Failed to update recurring hours", err)
				}
			}
			existing.IsActive = up.IsActive
			result = existing
			return nil
		case errors.Is(err, availerrors.ErrHoursNotFound):
			created := &model.RecurringHours{
				LocationID: up.LocationID,
				Weekday:    up.Weekday,
				IsActive:   up.IsActive,
				Windows:    []model.DayWindow{},
			}
			if err := s.repo.Insert(sessCtx, created); err != nil {
				return apperrors.Internal("Failed to create recurring hours", err)
			}
			result = created
			return nil
		default:
			return apperrors.Internal("Failed to look up recurring hours", err)
		}
	})
	if err != nil {
		s.cfg.Log.Error("Failed to upsert recurring hours",
			"location_id", up.LocationID,
			"weekday", up.Weekday,
			"error", err,
		)
		return nil, apperrors.AsAppError(err)
	}

	s.cfg.Log.Info("Recurring hours upserted",
		"id", result.ID,
		"location_id", result.LocationID,
		"weekday", result.Weekday,
		"is_active", result.IsActive,
	)
	return result, nil
}

func (s *hoursService) Get(ctx context.Context, locationID string, weekday config.Weekday) (*model.RecurringHours, error) {
	locationID = sanitizer.NormalizeID(locationID)
	if locationID == "" {
		return nil, apperrors.InvalidInput("Location ID cannot be empty")
	}
	if !weekday.Valid() {
		return nil, apperrors.InvalidInput("Invalid weekday: " + string(weekday))
	}

	hours, err := s.repo.FindByLocationAndWeekday(ctx, locationID, weekday)
	if err != nil {
		if errors.Is(err, availerrors.ErrHoursNotFound) {
			return nil, apperrors.NotFound("Recurring hours")
		}
		return nil, apperrors.Internal("Failed to retrieve recurring hours", err)
	}
	return hours, nil
}

func (s *hoursService) List(ctx context.Context, locationID string) ([]*model.RecurringHours, error) {
	locationID = sanitizer.NormalizeID(locationID)
	if locationID == "" {
		return nil, apperrors.InvalidInput("Location ID cannot be empty")
	}

	hours, err := s.repo.FindByLocation(ctx, locationID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list recurring hours", err)
	}
	return hours, nil
}

func (s *hoursService) ListActive(ctx context.Context, locationID string) ([]*model.RecurringHours, error) {
	all, err := s.List(ctx, locationID)
	if err != nil {
		return nil, err
	}
	active := make([]*model.RecurringHours, 0, len(all))
	for _, h := range all {
		if h.IsActive {
			active = append(active, h)
		}
	}
	return active, nil
}

// AddWindow appends a window to a weekday. Creation is idempotent on the
// (start_local, end_local) natural key: re-adding an identical span returns
// the stored row instead of duplicating or erroring.
func (s *hoursService) AddWindow(ctx context.Context, locationID string, weekday config.Weekday, window model.DayWindow) (*model.DayWindow, error) {
	locationID = sanitizer.NormalizeID(locationID)
	if err := s.validator.ValidateWindow(&window); err != nil {
		s.cfg.Log.Warn("Window validation failed", "error", err)
		return nil, apperrors.Validation("Invalid time window", map[string]any{"error": err.Error()})
	}

	var result *model.DayWindow
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		parent, err := s.repo.FindByLocationAndWeekday(sessCtx, locationID, weekday)
		if err != nil {
			if errors.Is(err, availerrors.ErrHoursNotFound) {
				return apperrors.NotFound("Recurring hours")
			}
			return apperrors.Internal("Failed to look up recurring hours", err)
		}

		for i := range parent.Windows {
			if parent.Windows[i].SameSpan(window) {
				result = &parent.Windows[i]
				return nil
			}
		}

		window.ID = uuid.NewString()
		next := append(append([]model.DayWindow{}, parent.Windows...), window)
		if err := s.validator.ValidateWindowSet(next); err != nil {
			return apperrors.Validation("Time window overlaps an existing window", map[string]any{"error": err.Error()})
		}

		if err := s.repo.ReplaceWindows(sessCtx, parent.ID, next); err != nil {
			return apperrors.Internal("Failed to store time window", err)
		}
		result = &window
		return nil
	})
	if err != nil {
		return nil, apperrors.AsAppError(err)
	}

	s.cfg.Log.Info("Time window added",
		"location_id", locationID,
		"weekday", weekday,
		"window_id", result.ID,
		"start_local", result.StartLocal,
		"end_local", result.EndLocal,
	)
	return result, nil
}

func (s *hoursService) UpdateWindow(ctx context.Context, locationID string, weekday config.Weekday, windowID string, patch *model.DayWindowPatch) (*model.DayWindow, error) {
	locationID = sanitizer.NormalizeID(locationID)
	if windowID == "" {
		return nil, apperrors.InvalidInput("Window ID cannot be empty")
	}
	if err := s.validator.ValidateWindowPatch(patch); err != nil {
		return nil, apperrors.Validation("Invalid window patch", map[string]any{"error": err.Error()})
	}

	var result *model.DayWindow
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		parent, err := s.repo.FindByLocationAndWeekday(sessCtx, locationID, weekday)
		if err != nil {
			if errors.Is(err, availerrors.ErrHoursNotFound) {
				return apperrors.NotFound("Recurring hours")
			}
			return apperrors.Internal("Failed to look up recurring hours", err)
		}

		next := append([]model.DayWindow{}, parent.Windows...)
		updated, err := applyWindowPatch(next, windowID, patch)
		if err != nil {
			return err
		}
		if err := s.validator.ValidateWindow(updated); err != nil {
			return apperrors.Validation("Invalid time window", map[string]any{"error": err.Error()})
		}
		if err := s.validator.ValidateWindowSet(next); err != nil {
			return apperrors.Validation("Time window overlaps an existing window", map[string]any{"error": err.Error()})
		}

		if err := s.repo.ReplaceWindows(sessCtx, parent.ID, next); err != nil {
			return apperrors.Internal("Failed to store time window", err)
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, apperrors.AsAppError(err)
	}
	return result, nil
}

// RemoveWindow deletes a persisted window. An empty window id marks an
// edit that was never persisted; deleting it is a storage no-op.
func (s *hoursService) RemoveWindow(ctx context.Context, locationID string, weekday config.Weekday, windowID string) error {
	if windowID == "" {
		return nil
	}
	locationID = sanitizer.NormalizeID(locationID)

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		parent, err := s.repo.FindByLocationAndWeekday(sessCtx, locationID, weekday)
		if err != nil {
			if errors.Is(err, availerrors.ErrHoursNotFound) {
				return apperrors.NotFound("Recurring hours")
			}
			return apperrors.Internal("Failed to look up recurring hours", err)
		}

		next, removed := removeWindowByID(parent.Windows, windowID)
		if !removed {
			return apperrors.NotFoundWithID("Time window", windowID)
		}
		if err := s.repo.ReplaceWindows(sessCtx, parent.ID, next); err != nil {
			return apperrors.Internal("Failed to remove time window", err)
		}
		return nil
	})
	if err != nil {
		return apperrors.AsAppError(err)
	}

	s.cfg.Log.Info("Time window removed",
		"location_id", locationID,
		"weekday", weekday,
		"window_id", windowID,
	)
	return nil
}

func applyWindowPatch(windows []model.DayWindow, windowID string, patch *model.DayWindowPatch) (*model.DayWindow, error) {
	for i := range windows {
		if windows[i].ID != windowID {
			continue
		}
		if patch.StartLocal != nil {
			windows[i].StartLocal = *patch.StartLocal
		}
		if patch.EndLocal != nil {
			windows[i].EndLocal = *patch.EndLocal
		}
		if patch.IsActive != nil {
			windows[i].IsActive = *patch.IsActive
		}
		return &windows[i], nil
	}
	return nil, apperrors.NotFoundWithID("Time window", windowID)
}

func removeWindowByID(windows []model.DayWindow, windowID string) ([]model.DayWindow, bool) {
	next := make([]model.DayWindow, 0, len(windows))
	removed := false
	for _, w := range windows {
		if w.ID == windowID {
			removed = true
			continue
		}
		next = append(next, w)
	}
	return next, removed
}
