package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingserrors "clinicbook/internal/bookings/errors"
	"clinicbook/internal/bookings/repository"
	"clinicbook/internal/bookings/validator"
	"clinicbook/pkg/config"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/kafka"
	"clinicbook/pkg/model"
	"clinicbook/pkg/sanitizer"
	"clinicbook/pkg/wallclock"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	Search(ctx context.Context, resourceID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, int64, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
}

// EventPublisher is the post-commit notification hook. Publishing is best
// effort: a failed publish logs and the booking stands.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	conflicts *ConflictChecker
	validator *validator.BookingValidator
	publisher EventPublisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	conflicts *ConflictChecker,
	validator *validator.BookingValidator,
	publisher EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		conflicts: conflicts,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create books a slot. The advisory lock serializes all writers for the
// resource; the conflict check then runs inside the insert transaction
// under that lock, so of two concurrent overlapping requests at most one
// commits and the other surfaces SlotTaken.
func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	s.applyDefaults(req)
	s.sanitize(req)
	if req.ResourceID == "" {
		return nil, apperrors.InvalidInput("resource_id is required when single-therapist mode is off")
	}
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking request validation failed", "error", err)
		return nil, apperrors.Validation("Invalid booking request", map[string]any{"error": err.Error()})
	}

	booking, err := s.materialize(req)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(booking); err != nil {
		return nil, apperrors.Validation("Invalid booking", map[string]any{"error": err.Error()})
	}

	lockID, err := s.acquireResourceLock(ctx, booking.ResourceID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.conflicts.CheckSlot(sessCtx, booking.ResourceID, booking.LocationID, booking.StartTime, booking.DurationMinutes, booking.Timezone); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking",
			"resource_id", booking.ResourceID,
			"location_id", booking.LocationID,
			"start_time", booking.StartTime,
			"error", err,
		)
		return nil, apperrors.AsAppError(err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"resource_id", booking.ResourceID,
		"location_id", booking.LocationID,
		"start_time", booking.StartTime,
	)
	s.publishEvent(ctx, kafka.EventBookingCreated, booking)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}
	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return bookings, count, nil
}

func (s *bookingService) Search(ctx context.Context, resourceID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, int64, error) {
	resourceID = sanitizer.NormalizeID(resourceID)
	if resourceID == "" {
		return nil, 0, apperrors.InvalidInput("resource_id is required")
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountByResource(ctx, resourceID, from, to)
		if err != nil {
			s.cfg.Log.Error("Failed to count bookings by search", "resource_id", resourceID, "error", err)
			errCount = apperrors.Internal("Failed to count bookings", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		bookings, err = s.repo.FindByResource(ctx, resourceID, from, to, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search bookings",
				"resource_id", resourceID,
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to search bookings", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	s.cfg.Log.Debug("Booking search completed",
		"resource_id", resourceID,
		"count", len(bookings),
		"total_count", count,
	)
	return bookings, count, nil
}

// Cancel flips the booking to cancelled, freeing its interval for new
// bookings. Cancelling an already-cancelled booking is a no-op; a
// completed visit cannot be cancelled.
func (s *bookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case config.Cancelled:
		return booking, nil
	case config.Completed:
		return nil, apperrors.Conflict("Cannot cancel a completed booking")
	}

	if err := s.repo.UpdateStatus(ctx, booking.ID, config.Cancelled); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("Failed to cancel booking", err)
	}
	booking.Status = config.Cancelled

	s.cfg.Log.Info("Booking cancelled", "id", booking.ID, "resource_id", booking.ResourceID)
	s.publishEvent(ctx, kafka.EventBookingCancelled, booking)
	return booking, nil
}

// --- Helpers ---

func (s *bookingService) applyDefaults(req *model.BookingRequest) {
	if req.Timezone == "" {
		req.Timezone = s.cfg.DefaultTimezone
	}
	if req.ResourceID == "" && s.cfg.SingleTherapistMode {
		req.ResourceID = s.cfg.DefaultTherapistID
	}
}

func (s *bookingService) sanitize(req *model.BookingRequest) {
	req.ResourceID = sanitizer.NormalizeID(req.ResourceID)
	req.LocationID = sanitizer.NormalizeID(req.LocationID)
	req.Patient.Name = sanitizer.NormalizeName(req.Patient.Name)
	req.Patient.Phone = sanitizer.NormalizePhone(req.Patient.Phone)
}

// materialize converts the wall-clock request into a stored booking with
// UTC instants. The end instant is start plus duration in absolute time;
// the wall-clock math happens only at the start edge, per the containment
// rules for days spanning a DST transition.
func (s *bookingService) materialize(req *model.BookingRequest) (*model.Booking, error) {
	date, err := wallclock.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.InvalidInput("Invalid date, expected YYYY-MM-DD: " + req.Date)
	}

	start, err := wallclock.ToUTC(date, req.StartLocal, req.Timezone)
	if err != nil {
		switch {
		case errors.Is(err, wallclock.ErrInvalidLocalTime):
			return nil, apperrors.InvalidLocalTime(fmt.Sprintf(
				"Local time %s does not exist in %s on %s", req.StartLocal, req.Timezone, req.Date,
			))
		case errors.Is(err, wallclock.ErrUnknownZone):
			return nil, apperrors.InvalidInput("Unknown timezone: " + req.Timezone)
		case errors.Is(err, wallclock.ErrInvalidClock):
			return nil, apperrors.InvalidInput("Invalid start_local time: " + req.StartLocal)
		default:
			return nil, apperrors.Internal("Failed to convert booking time", err)
		}
	}

	return &model.Booking{
		ResourceID:      req.ResourceID,
		LocationID:      req.LocationID,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(req.DurationMinutes) * time.Minute),
		DurationMinutes: req.DurationMinutes,
		Status:          config.Pending,
		Timezone:        req.Timezone,
		Patient:         req.Patient,
	}, nil
}

// acquireResourceLock serializes booking writers per resource. Overlap is
// a property of the whole interval, not a single start instant, so the key
// is the resource alone: two in-flight creates for the same therapist
// contend here even when their start times differ. A duplicate key means
// another request is mid-flight; the caller gets the same SlotTaken
// outcome it would get after losing the race.
func (s *bookingService) acquireResourceLock(ctx context.Context, resourceID string) (string, error) {
	lockID := fmt.Sprintf("slot_%s", resourceID)

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.BookingLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.SlotTaken("Another booking for this resource is being processed. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}
	return lockID, nil
}

func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

func (s *bookingService) publishEvent(ctx context.Context, eventType string, booking *model.Booking) {
	if s.publisher == nil {
		return
	}

	msg, err := kafka.NewEvent(eventType, booking.ResourceID, booking, "bookings-service")
	if err != nil {
		s.cfg.Log.Warn("Failed to build booking event", "event", eventType, "id", booking.ID, "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event", "event", eventType, "id", booking.ID, "error", err)
	}
}
