package service

import (
	"context"
	"io"

	"clinicbook/pkg/config"
	mongotx "clinicbook/pkg/db/mongo"
	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

type mockHoursRepo struct {
	InsertFunc                   func(ctx context.Context, hours *model.RecurringHours) error
	FindByLocationAndWeekdayFunc func(ctx context.Context, locationID string, weekday config.Weekday) (*model.RecurringHours, error)
	FindByLocationFunc           func(ctx context.Context, locationID string) ([]*model.RecurringHours, error)
	SetActiveFunc                func(ctx context.Context, id string, isActive bool) error
	ReplaceWindowsFunc           func(ctx context.Context, id string, windows []model.DayWindow) error
}

func (m *mockHoursRepo) Insert(ctx context.Context, hours *model.RecurringHours) error {
	return m.InsertFunc(ctx, hours)
}

func (m *mockHoursRepo) FindByLocationAndWeekday(ctx context.Context, locationID string, weekday config.Weekday) (*model.RecurringHours, error) {
	return m.FindByLocationAndWeekdayFunc(ctx, locationID, weekday)
}

func (m *mockHoursRepo) FindByLocation(ctx context.Context, locationID string) ([]*model.RecurringHours, error) {
	return m.FindByLocationFunc(ctx, locationID)
}

func (m *mockHoursRepo) SetActive(ctx context.Context, id string, isActive bool) error {
	return m.SetActiveFunc(ctx, id, isActive)
}

func (m *mockHoursRepo) ReplaceWindows(ctx context.Context, id string, windows []model.DayWindow) error {
	return m.ReplaceWindowsFunc(ctx, id, windows)
}

func (m *mockHoursRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockOverrideRepo struct {
	InsertFunc           func(ctx context.Context, override *model.DateOverride) error
	FindByIDFunc         func(ctx context.Context, id string) (*model.DateOverride, error)
	FindCoveringFunc     func(ctx context.Context, locationID, dateKey string) (*model.DateOverride, error)
	FindIntersectingFunc func(ctx context.Context, locationID, startDate, endDate, excludeID string) ([]*model.DateOverride, error)
	FindInRangeFunc      func(ctx context.Context, locationID, from, to string) ([]*model.DateOverride, error)
	UpdateFieldsFunc     func(ctx context.Context, id string, fields bson.M) error
	ReplaceWindowsFunc   func(ctx context.Context, id string, windows []model.DayWindow) error
	DeleteFunc           func(ctx context.Context, id string) error
}

func (m *mockOverrideRepo) Insert(ctx context.Context, override *model.DateOverride) error {
	return m.InsertFunc(ctx, override)
}

func (m *mockOverrideRepo) FindByID(ctx context.Context, id string) (*model.DateOverride, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOverrideRepo) FindCovering(ctx context.Context, locationID, dateKey string) (*model.DateOverride, error) {
	return m.FindCoveringFunc(ctx, locationID, dateKey)
}

func (m *mockOverrideRepo) FindIntersecting(ctx context.Context, locationID, startDate, endDate, excludeID string) ([]*model.DateOverride, error) {
	return m.FindIntersectingFunc(ctx, locationID, startDate, endDate, excludeID)
}

func (m *mockOverrideRepo) FindInRange(ctx context.Context, locationID, from, to string) ([]*model.DateOverride, error) {
	return m.FindInRangeFunc(ctx, locationID, from, to)
}

func (m *mockOverrideRepo) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	return m.UpdateFieldsFunc(ctx, id, fields)
}

func (m *mockOverrideRepo) ReplaceWindows(ctx context.Context, id string, windows []model.DayWindow) error {
	return m.ReplaceWindowsFunc(ctx, id, windows)
}

func (m *mockOverrideRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockOverrideRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func newTestConfig() *config.Config {
	return &config.Config{
		DefaultTimezone: "America/Los_Angeles",
		MaxRangeDays:    62,
		Log: logger.New(logger.Config{
			Level:  logger.ERROR,
			Format: logger.TEXT,
			Output: io.Discard,
		}),
	}
}
