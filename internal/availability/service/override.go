package service

import (
	"context"
	"errors"
	"fmt"

	availerrors "clinicbook/internal/availability/errors"
	"clinicbook/internal/availability/repository"
	"clinicbook/internal/availability/validator"
	"clinicbook/pkg/config"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/model"
	"clinicbook/pkg/sanitizer"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type OverrideService interface {
	Create(ctx context.Context, override *model.DateOverride) (*model.DateOverride, error)
	GetByID(ctx context.Context, id string) (*model.DateOverride, error)
	Update(ctx context.Context, id string, patch *model.DateOverridePatch) (*model.DateOverride, error)
	Delete(ctx context.Context, id string) error
	ListInRange(ctx context.Context, locationID, from, to string) ([]*model.DateOverride, error)
	AddWindow(ctx context.Context, overrideID string, window model.DayWindow) (*model.DayWindow, error)
	RemoveWindow(ctx context.Context, overrideID, windowID string) error
}

type overrideService struct {
	repo      repository.DateOverrideRepository
	validator *validator.AvailabilityValidator
	cfg       *config.Config
}

func NewOverrideService(
	repo repository.DateOverrideRepository,
	validator *validator.AvailabilityValidator,
	cfg *config.Config,
) OverrideService {
	return &overrideService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

// Create stores a date override after checking that its date range does not
// intersect any existing override for the same location. The intersection
// check runs inside the insert transaction so two concurrent creates cannot
// both pass it.
func (s *overrideService) Create(ctx context.Context, override *model.DateOverride) (*model.DateOverride, error) {
	override.LocationID = sanitizer.NormalizeID(override.LocationID)
	override.Reason = sanitizer.NormalizeReason(override.Reason)
	if err := s.validator.ValidateOverride(override); err != nil {
		s.cfg.Log.Warn("Override validation failed", "error", err)
		return nil, apperrors.Validation("Invalid date override input", map[string]any{"error": err.Error()})
	}

	for i := range override.Windows {
		if override.Windows[i].ID == "" {
			override.Windows[i].ID = uuid.NewString()
		}
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.rejectIntersecting(sessCtx, override.LocationID, override.StartDate, override.EndDate, ""); err != nil {
			return err
		}
		if err := s.repo.Insert(sessCtx, override); err != nil {
			return apperrors.Internal("Failed to create date override", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create date override",
			"location_id", override.LocationID,
			"start_date", override.StartDate,
			"end_date", override.EndDate,
			"error", err,
		)
		return nil, apperrors.AsAppError(err)
	}

	s.cfg.Log.Info("Date override created",
		"id", override.ID,
		"location_id", override.LocationID,
		"start_date", override.StartDate,
		"end_date", override.EndDate,
		"is_closed", override.IsClosed,
	)
	return override, nil
}

func (s *overrideService) GetByID(ctx context.Context, id string) (*model.DateOverride, error) {
	id = sanitizer.NormalizeID(id)
	if id == "" {
		return nil, apperrors.InvalidInput("Override ID cannot be empty")
	}

	override, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, availerrors.ErrOverrideNotFound) {
			return nil, apperrors.NotFoundWithID("Date override", id)
		}
		return nil, apperrors.Internal("Failed to retrieve date override", err)
	}
	return override, nil
}

// Update applies a partial patch. When the patch moves the date range the
// intersection check re-runs against every other override for the location,
// excluding the document being updated.
func (s *overrideService) Update(ctx context.Context, id string, patch *model.DateOverridePatch) (*model.DateOverride, error) {
	id = sanitizer.NormalizeID(id)
	if id == "" {
		return nil, apperrors.InvalidInput("Override ID cannot be empty")
	}
	if err := s.validator.ValidateOverridePatch(patch); err != nil {
		return nil, apperrors.Validation("Invalid override patch", map[string]any{"error": err.Error()})
	}

	var result *model.DateOverride
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			if errors.Is(err, availerrors.ErrOverrideNotFound) {
				return apperrors.NotFoundWithID("Date override", id)
			}
			return apperrors.Internal("Failed to look up date override", err)
		}

		next := *existing
		fields := bson.M{}
		if patch.StartDate != nil {
			next.StartDate = *patch.StartDate
			fields["start_date"] = next.StartDate
		}
		if patch.EndDate != nil {
			next.EndDate = *patch.EndDate
			fields["end_date"] = next.EndDate
		}
		if patch.IsClosed != nil {
			next.IsClosed = *patch.IsClosed
			fields["is_closed"] = next.IsClosed
		}
		if patch.Reason != nil {
			next.Reason = sanitizer.NormalizeReason(*patch.Reason)
			fields["reason"] = next.Reason
		}
		if len(fields) == 0 {
			result = existing
			return nil
		}

		if err := s.validator.ValidateOverride(&next); err != nil {
			return apperrors.Validation("Invalid date override input", map[string]any{"error": err.Error()})
		}
		if patch.StartDate != nil || patch.EndDate != nil {
			if err := s.rejectIntersecting(sessCtx, next.LocationID, next.StartDate, next.EndDate, id); err != nil {
				return err
			}
		}

		if err := s.repo.UpdateFields(sessCtx, id, fields); err != nil {
			return apperrors.Internal("Failed to update date override", err)
		}
		result = &next
		return nil
	})
	if err != nil {
		return nil, apperrors.AsAppError(err)
	}

	s.cfg.Log.Info("Date override updated", "id", id)
	return result, nil
}

func (s *overrideService) Delete(ctx context.Context, id string) error {
	id = sanitizer.NormalizeID(id)
	if id == "" {
		return apperrors.InvalidInput("Override ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, availerrors.ErrOverrideNotFound) {
			return apperrors.NotFoundWithID("Date override", id)
		}
		return apperrors.Internal("Failed to delete date override", err)
	}

	s.cfg.Log.Info("Date override deleted", "id", id)
	return nil
}

func (s *overrideService) ListInRange(ctx context.Context, locationID, from, to string) ([]*model.DateOverride, error) {
	locationID = sanitizer.NormalizeID(locationID)
	if locationID == "" {
		return nil, apperrors.InvalidInput("Location ID cannot be empty")
	}
	if _, err := dateKeyOrError(from); err != nil {
		return nil, err
	}
	if _, err := dateKeyOrError(to); err != nil {
		return nil, err
	}
	if from > to {
		return nil, apperrors.InvalidInput("Range start date must not be after end date")
	}

	overrides, err := s.repo.FindInRange(ctx, locationID, from, to)
	if err != nil {
		return nil, apperrors.Internal("Failed to list date overrides", err)
	}
	return overrides, nil
}

func (s *overrideService) AddWindow(ctx context.Context, overrideID string, window model.DayWindow) (*model.DayWindow, error) {
	overrideID = sanitizer.NormalizeID(overrideID)
	if overrideID == "" {
		return nil, apperrors.InvalidInput("Override ID cannot be empty")
	}
	if err := s.validator.ValidateWindow(&window); err != nil {
		return nil, apperrors.Validation("Invalid time window", map[string]any{"error": err.Error()})
	}

	var result *model.DayWindow
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		parent, err := s.repo.FindByID(sessCtx, overrideID)
		if err != nil {
			if errors.Is(err, availerrors.ErrOverrideNotFound) {
				return apperrors.NotFoundWithID("Date override", overrideID)
			}
			return apperrors.Internal("Failed to look up date override", err)
		}
		if parent.IsClosed {
			return apperrors.InvalidInput("Cannot add windows to a closed-day override")
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

		if err := s.repo.ReplaceWindows(sessCtx, overrideID, next); err != nil {
			return apperrors.Internal("Failed to store time window", err)
		}
		result = &window
		return nil
	})
	if err != nil {
		return nil, apperrors.AsAppError(err)
	}
	return result, nil
}

// RemoveWindow deletes a window from an override. An empty window id marks
// an edit that was never persisted; deleting it is a storage no-op.
func (s *overrideService) RemoveWindow(ctx context.Context, overrideID, windowID string) error {
	if windowID == "" {
		return nil
	}
	overrideID = sanitizer.NormalizeID(overrideID)
	if overrideID == "" {
		return apperrors.InvalidInput("Override ID cannot be empty")
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		parent, err := s.repo.FindByID(sessCtx, overrideID)
		if err != nil {
			if errors.Is(err, availerrors.ErrOverrideNotFound) {
				return apperrors.NotFoundWithID("Date override", overrideID)
			}
			return apperrors.Internal("Failed to look up date override", err)
		}

		next, removed := removeWindowByID(parent.Windows, windowID)
		if !removed {
			return apperrors.NotFoundWithID("Time window", windowID)
		}
		if err := s.repo.ReplaceWindows(sessCtx, overrideID, next); err != nil {
			return apperrors.Internal("Failed to remove time window", err)
		}
		return nil
	})
	if err != nil {
		return apperrors.AsAppError(err)
	}
	return nil
}

func (s *overrideService) rejectIntersecting(ctx context.Context, locationID, startDate, endDate, excludeID string) error {
	intersecting, err := s.repo.FindIntersecting(ctx, locationID, startDate, endDate, excludeID)
	if err != nil {
		return apperrors.Internal("Failed to check override ranges", err)
	}
	if len(intersecting) > 0 {
		return apperrors.OverrideRangeOverlap(fmt.Sprintf(
			"Date range %s..%s intersects override %s", startDate, endDate, intersecting[0].ID,
		))
	}
	return nil
}
