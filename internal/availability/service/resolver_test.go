package service

import (
	"context"
	"testing"
	"time"

	availerrors "clinicbook/internal/availability/errors"
	"clinicbook/pkg/config"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/model"
	"clinicbook/pkg/wallclock"
)

func noOverride(ctx context.Context, locationID, dateKey string) (*model.DateOverride, error) {
	return nil, availerrors.ErrOverrideNotFound
}

func noHours(ctx context.Context, locationID string, weekday config.Weekday) (*model.RecurringHours, error) {
	return nil, availerrors.ErrHoursNotFound
}

func TestResolveRecurringHours(t *testing.T) {
	hours := &mockHoursRepo{
		FindByLocationAndWeekdayFunc: func(ctx context.Context, locationID string, weekday config.Weekday) (*model.RecurringHours, error) {
			if weekday != config.Monday {
				t.Fatalf("expected Monday lookup, got %s", weekday)
			}
			return &model.RecurringHours{
				LocationID: locationID,
				Weekday:    weekday,
				IsActive:   true,
				Windows: []model.DayWindow{
					{ID: "w2", StartLocal: "13:00", EndLocal: "17:00", IsActive: true},
					{ID: "w1", StartLocal: "09:00", EndLocal: "12:00", IsActive: true},
					{ID: "w3", StartLocal: "18:00", EndLocal: "20:00", IsActive: false},
				},
			}, nil
		},
	}
	overrides := &mockOverrideRepo{FindCoveringFunc: noOverride}
	svc := NewResolverService(hours, overrides, newTestConfig())

	// 2026-03-09 is a Monday, after the US spring-forward, so LA is UTC-7.
	date := wallclock.NewDate(2026, time.March, 9)
	windows, err := svc.Resolve(context.Background(), "loc-1", date, "America/Los_Angeles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	wantFirst := time.Date(2026, time.March, 9, 16, 0, 0, 0, time.UTC)
	if !windows[0].Start.Equal(wantFirst) {
		t.Errorf("windows not sorted by start: first = %v, want %v", windows[0].Start, wantFirst)
	}
	wantSecondEnd := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	if !windows[1].End.Equal(wantSecondEnd) {
		t.Errorf("second window end = %v, want %v", windows[1].End, wantSecondEnd)
	}
}

func TestResolveClosedOverrideWinsOverHours(t *testing.T) {
	hours := &mockHoursRepo{
		FindByLocationAndWeekdayFunc: func(ctx context.Context, locationID string, weekday config.Weekday) (*model.RecurringHours, error) {
			t.Fatal("recurring hours must not be consulted when an override covers the date")
			return nil, nil
		},
	}
	overrides := &mockOverrideRepo{
		FindCoveringFunc: func(ctx context.Context, locationID, dateKey string) (*model.DateOverride, error) {
			return &model.DateOverride{
				ID:         "ov-1",
				LocationID: locationID,
				StartDate:  "2026-07-01",
				EndDate:    "2026-07-10",
				IsClosed:   true,
			}, nil
		},
	}
	svc := NewResolverService(hours, overrides, newTestConfig())

	windows, err := svc.Resolve(context.Background(), "loc-1", wallclock.NewDate(2026, time.July, 4), "America/Los_Angeles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 0 {
		t.Errorf("closed override should yield no windows, got %d", len(windows))
	}
}

func TestResolveOpenOverrideZeroWindowsIsEmpty(t *testing.T) {
	hours := &mockHoursRepo{
		FindByLocationAndWeekdayFunc: func(ctx context.Context, locationID string, weekday config.Weekday) (*model.RecurringHours, error) {
			t.Fatal("an open override with no windows must not fall back to recurring hours")
			return nil, nil
		},
	}
	overrides := &mockOverrideRepo{
		FindCoveringFunc: func(ctx context.Context, locationID, dateKey string) (*model.DateOverride, error) {
			return &model.DateOverride{
				ID:         "ov-2",
				LocationID: locationID,
				StartDate:  "2026-07-04",
				EndDate:    "2026-07-04",
				IsClosed:   false,
				Windows:    []model.DayWindow{},
			}, nil
		},
	}
	svc := NewResolverService(hours, overrides, newTestConfig())

	windows, err := svc.Resolve(context.Background(), "loc-1", wallclock.NewDate(2026, time.July, 4), "America/Los_Angeles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 0 {
		t.Errorf("expected no windows, got %d", len(windows))
	}
}

func TestResolveOpenOverrideUsesItsWindows(t *testing.T) {
	overrides := &mockOverrideRepo{
		FindCoveringFunc: func(ctx context.Context, locationID, dateKey string) (*model.DateOverride, error) {
			return &model.DateOverride{
				ID:         "ov-3",
				LocationID: locationID,
				StartDate:  "2026-07-04",
				EndDate:    "2026-07-04",
				Windows: []model.DayWindow{
					{ID: "w1", StartLocal: "10:00", EndLocal: "14:00", IsActive: true},
					{ID: "w2", StartLocal: "15:00", EndLocal: "18:00", IsActive: false},
				},
			}, nil
		},
	}
	hours := &mockHoursRepo{FindByLocationAndWeekdayFunc: noHours}
	svc := NewResolverService(hours, overrides, newTestConfig())

	windows, err := svc.Resolve(context.Background(), "loc-1", wallclock.NewDate(2026, time.July, 4), "America/Los_Angeles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 1 {
		t.Fatalf("expected the single active override window, got %d", len(windows))
	}
	wantStart := time.Date(2026, time.July, 4, 17, 0, 0, 0, time.UTC)
	if !windows[0].Start.Equal(wantStart) {
		t.Errorf("window start = %v, want %v", windows[0].Start, wantStart)
	}
}

func TestResolveNoHoursConfigured(t *testing.T) {
	overrides := &mockOverrideRepo{FindCoveringFunc: noOverride}

	tests := []struct {
		name  string
		hours *mockHoursRepo
	}{
		{
			name:  "weekday missing",
			hours: &mockHoursRepo{FindByLocationAndWeekdayFunc: noHours},
		},
		{
			name: "weekday inactive",
			hours: &mockHoursRepo{
				FindByLocationAndWeekdayFunc: func(ctx context.Context, locationID string, weekday config.Weekday) (*model.RecurringHours, error) {
					return &model.RecurringHours{
						LocationID: locationID,
						Weekday:    weekday,
						IsActive:   false,
						Windows: []model.DayWindow{
							{StartLocal: "09:00", EndLocal: "17:00", IsActive: true},
						},
					}, nil
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewResolverService(tt.hours, overrides, newTestConfig())
			windows, err := svc.Resolve(context.Background(), "loc-1", wallclock.NewDate(2026, time.March, 9), "America/Los_Angeles")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(windows) != 0 {
				t.Errorf("expected no windows, got %d", len(windows))
			}
		})
	}
}

func TestResolveDefaultsTimezone(t *testing.T) {
	overrides := &mockOverrideRepo{FindCoveringFunc: noOverride}
	hours := &mockHoursRepo{
		FindByLocationAndWeekdayFunc: func(ctx context.Context, locationID string, weekday config.Weekday) (*model.RecurringHours, error) {
			return &model.RecurringHours{
				LocationID: locationID,
				Weekday:    weekday,
				IsActive:   true,
				Windows:    []model.DayWindow{{ID: "w1", StartLocal: "09:00", EndLocal: "17:00", IsActive: true}},
			}, nil
		},
	}
	cfg := newTestConfig()
	cfg.DefaultTimezone = "Asia/Tokyo"
	svc := NewResolverService(hours, overrides, cfg)

	windows, err := svc.Resolve(context.Background(), "loc-1", wallclock.NewDate(2026, time.March, 9), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Tokyo is UTC+9 year round: 09:00 local on the 9th is 00:00 UTC.
	wantStart := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	if !windows[0].Start.Equal(wantStart) {
		t.Errorf("window start = %v, want %v", windows[0].Start, wantStart)
	}
}

func TestResolveSpringForwardGapWindow(t *testing.T) {
	overrides := &mockOverrideRepo{FindCoveringFunc: noOverride}
	hours := &mockHoursRepo{
		FindByLocationAndWeekdayFunc: func(ctx context.Context, locationID string, weekday config.Weekday) (*model.RecurringHours, error) {
			return &model.RecurringHours{
				LocationID: locationID,
				Weekday:    weekday,
				IsActive:   true,
				Windows:    []model.DayWindow{{ID: "w1", StartLocal: "02:30", EndLocal: "04:00", IsActive: true}},
			}, nil
		},
	}
	svc := NewResolverService(hours, overrides, newTestConfig())

	// 2026-03-08 02:30 does not exist in America/Los_Angeles.
	_, err := svc.Resolve(context.Background(), "loc-1", wallclock.NewDate(2026, time.March, 8), "America/Los_Angeles")
	if !apperrors.IsCode(err, apperrors.CodeInvalidLocalTime) {
		t.Fatalf("expected %s, got %v", apperrors.CodeInvalidLocalTime, err)
	}
}

func TestResolveRange(t *testing.T) {
	overrides := &mockOverrideRepo{
		FindCoveringFunc: func(ctx context.Context, locationID, dateKey string) (*model.DateOverride, error) {
			if dateKey == "2026-03-10" {
				return &model.DateOverride{
					ID:         "ov-1",
					LocationID: locationID,
					StartDate:  "2026-03-10",
					EndDate:    "2026-03-10",
					IsClosed:   true,
				}, nil
			}
			return nil, availerrors.ErrOverrideNotFound
		},
	}
	hours := &mockHoursRepo{
		FindByLocationAndWeekdayFunc: func(ctx context.Context, locationID string, weekday config.Weekday) (*model.RecurringHours, error) {
			return &model.RecurringHours{
				LocationID: locationID,
				Weekday:    weekday,
				IsActive:   true,
				Windows:    []model.DayWindow{{ID: "w1", StartLocal: "09:00", EndLocal: "17:00", IsActive: true}},
			}, nil
		},
	}
	svc := NewResolverService(hours, overrides, newTestConfig())

	days, err := svc.ResolveRange(context.Background(), "loc-1",
		wallclock.NewDate(2026, time.March, 9), wallclock.NewDate(2026, time.March, 11), "America/Los_Angeles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	if days[0].Date != "2026-03-09" || days[2].Date != "2026-03-11" {
		t.Errorf("unexpected date keys: %s .. %s", days[0].Date, days[2].Date)
	}
	if len(days[0].Windows) != 1 || len(days[2].Windows) != 1 {
		t.Errorf("expected one window on the open days")
	}
	if len(days[1].Windows) != 0 {
		t.Errorf("closed override day should have no windows, got %d", len(days[1].Windows))
	}
}

func TestResolveRangeValidation(t *testing.T) {
	svc := NewResolverService(
		&mockHoursRepo{FindByLocationAndWeekdayFunc: noHours},
		&mockOverrideRepo{FindCoveringFunc: noOverride},
		newTestConfig(),
	)

	_, err := svc.ResolveRange(context.Background(), "loc-1",
		wallclock.NewDate(2026, time.March, 11), wallclock.NewDate(2026, time.March, 9), "America/Los_Angeles")
	if !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("inverted range: expected %s, got %v", apperrors.CodeInvalidInput, err)
	}

	_, err = svc.ResolveRange(context.Background(), "loc-1",
		wallclock.NewDate(2026, time.January, 1), wallclock.NewDate(2026, time.December, 31), "America/Los_Angeles")
	if !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("oversized range: expected %s, got %v", apperrors.CodeInvalidInput, err)
	}
}
