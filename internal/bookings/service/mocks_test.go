package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	bookingserrors "clinicbook/internal/bookings/errors"
	"clinicbook/pkg/config"
	mongotx "clinicbook/pkg/db/mongo"
	"clinicbook/pkg/kafka"
	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"
	"clinicbook/pkg/wallclock"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockBookingRepo struct {
	CreateFunc          func(ctx context.Context, booking *model.Booking) error
	FindByIDFunc        func(ctx context.Context, id string) (*model.Booking, error)
	FindAllFunc         func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	CountFunc           func(ctx context.Context) (int64, error)
	FindOverlappingFunc func(ctx context.Context, resourceID string, start, end time.Time, limit int) ([]*model.Booking, error)
	FindByResourceFunc  func(ctx context.Context, resourceID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, error)
	CountByResourceFunc func(ctx context.Context, resourceID string, from, to *time.Time) (int64, error)
	UpdateStatusFunc    func(ctx context.Context, id string, status string) error
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *model.Booking) error {
	return m.CreateFunc(ctx, booking)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockBookingRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	return m.FindAllFunc(ctx, limit, offset)
}

func (m *mockBookingRepo) Count(ctx context.Context) (int64, error) {
	return m.CountFunc(ctx)
}

func (m *mockBookingRepo) FindOverlapping(ctx context.Context, resourceID string, start, end time.Time, limit int) ([]*model.Booking, error) {
	return m.FindOverlappingFunc(ctx, resourceID, start, end, limit)
}

func (m *mockBookingRepo) FindByResource(ctx context.Context, resourceID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, error) {
	return m.FindByResourceFunc(ctx, resourceID, from, to, limit, offset)
}

func (m *mockBookingRepo) CountByResource(ctx context.Context, resourceID string, from, to *time.Time) (int64, error) {
	return m.CountByResourceFunc(ctx, resourceID, from, to)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	return m.UpdateStatusFunc(ctx, id, status)
}

func (m *mockBookingRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockLockRepo struct {
	CreateFunc func(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error)
	DeleteFunc func(ctx context.Context, lockID string) error
}

func (m *mockLockRepo) Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
	if m.CreateFunc == nil {
		return lock, nil
	}
	return m.CreateFunc(ctx, lock)
}

func (m *mockLockRepo) Delete(ctx context.Context, lockID string) error {
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, lockID)
}

type mockResolver struct {
	ResolveFunc func(ctx context.Context, locationID string, date wallclock.Date, tz string) ([]model.Window, error)
}

func (m *mockResolver) Resolve(ctx context.Context, locationID string, date wallclock.Date, tz string) ([]model.Window, error) {
	return m.ResolveFunc(ctx, locationID, date, tz)
}

type mockPublisher struct {
	published []kafka.Message
	err       error
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, msg)
	return nil
}

// memoryLockRepo mirrors the unique-_id collection: a second Create for a
// held key fails with the same duplicate-key error the Mongo driver
// returns.
type memoryLockRepo struct {
	mu    sync.Mutex
	locks map[string]struct{}
}

func (m *memoryLockRepo) Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks == nil {
		m.locks = make(map[string]struct{})
	}
	if _, held := m.locks[lock.ID]; held {
		return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	}
	m.locks[lock.ID] = struct{}{}
	return lock, nil
}

func (m *memoryLockRepo) Delete(ctx context.Context, lockID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, lockID)
	return nil
}

// memoryBookingRepo keeps committed bookings in a slice and answers
// FindOverlapping with the same half-open filter the Mongo repository
// sends.
type memoryBookingRepo struct {
	mu       sync.Mutex
	bookings []*model.Booking
}

func (m *memoryBookingRepo) Create(ctx context.Context, booking *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking.ID = fmt.Sprintf("%024x", len(m.bookings)+1)
	m.bookings = append(m.bookings, booking)
	return nil
}

func (m *memoryBookingRepo) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *memoryBookingRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*model.Booking(nil), m.bookings...), nil
}

func (m *memoryBookingRepo) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.bookings)), nil
}

func (m *memoryBookingRepo) FindOverlapping(ctx context.Context, resourceID string, start, end time.Time, limit int) ([]*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Booking
	for _, b := range m.bookings {
		if b.ResourceID == resourceID && b.Status != config.Cancelled &&
			b.StartTime.Before(end) && b.EndTime.After(start) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryBookingRepo) FindByResource(ctx context.Context, resourceID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, error) {
	return nil, nil
}

func (m *memoryBookingRepo) CountByResource(ctx context.Context, resourceID string, from, to *time.Time) (int64, error) {
	return 0, nil
}

func (m *memoryBookingRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.ID == id {
			b.Status = status
			return nil
		}
	}
	return bookingserrors.ErrNotFound
}

func (m *memoryBookingRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func newTestConfig() *config.Config {
	return &config.Config{
		DefaultTimezone:  "America/Los_Angeles",
		OverlapScanLimit: 50,
		BookingLockTTL:   10 * time.Second,
		Log: logger.New(logger.Config{
			Level:  logger.ERROR,
			Format: logger.TEXT,
			Output: io.Discard,
		}),
	}
}
