package validator

import (
	"testing"

	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"
)

func newTestValidator() *AvailabilityValidator {
	return New(logger.New(logger.Config{Level: "error", Service: "test"}))
}

func TestValidateWindow(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name    string
		window  model.DayWindow
		wantErr bool
	}{
		{
			name:   "valid window",
			window: model.DayWindow{StartLocal: "09:00", EndLocal: "17:00", IsActive: true},
		},
		{
			name:    "start equals end",
			window:  model.DayWindow{StartLocal: "09:00", EndLocal: "09:00", IsActive: true},
			wantErr: true,
		},
		{
			name:    "start after end",
			window:  model.DayWindow{StartLocal: "17:00", EndLocal: "09:00", IsActive: true},
			wantErr: true,
		},
		{
			name:    "malformed clock",
			window:  model.DayWindow{StartLocal: "9am", EndLocal: "17:00", IsActive: true},
			wantErr: true,
		},
		{
			name:    "out of range hour",
			window:  model.DayWindow{StartLocal: "25:00", EndLocal: "26:00", IsActive: true},
			wantErr: true,
		},
		{
			name:    "missing end",
			window:  model.DayWindow{StartLocal: "09:00", IsActive: true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateWindow(&tt.window)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWindow(%+v) error = %v, wantErr %v", tt.window, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWindowSet(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name    string
		windows []model.DayWindow
		wantErr bool
	}{
		{
			name: "disjoint windows",
			windows: []model.DayWindow{
				{StartLocal: "09:00", EndLocal: "12:00", IsActive: true},
				{StartLocal: "13:00", EndLocal: "17:00", IsActive: true},
			},
		},
		{
			name: "abutting windows allowed",
			windows: []model.DayWindow{
				{StartLocal: "09:00", EndLocal: "12:00", IsActive: true},
				{StartLocal: "12:00", EndLocal: "17:00", IsActive: true},
			},
		},
		{
			name: "overlapping active windows rejected",
			windows: []model.DayWindow{
				{StartLocal: "09:00", EndLocal: "13:00", IsActive: true},
				{StartLocal: "12:00", EndLocal: "17:00", IsActive: true},
			},
			wantErr: true,
		},
		{
			name: "overlap with inactive window ignored",
			windows: []model.DayWindow{
				{StartLocal: "09:00", EndLocal: "13:00", IsActive: true},
				{StartLocal: "12:00", EndLocal: "17:00", IsActive: false},
			},
		},
		{
			name: "containment counts as overlap",
			windows: []model.DayWindow{
				{StartLocal: "09:00", EndLocal: "17:00", IsActive: true},
				{StartLocal: "10:00", EndLocal: "11:00", IsActive: true},
			},
			wantErr: true,
		},
		{
			name:    "empty set",
			windows: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateWindowSet(tt.windows)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWindowSet error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateOverride(t *testing.T) {
	v := newTestValidator()

	base := func() model.DateOverride {
		return model.DateOverride{
			LocationID: "loc-main",
			StartDate:  "2026-07-01",
			EndDate:    "2026-07-03",
		}
	}

	t.Run("valid closed override", func(t *testing.T) {
		o := base()
		o.IsClosed = true
		if err := v.ValidateOverride(&o); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("closed override with windows rejected", func(t *testing.T) {
		o := base()
		o.IsClosed = true
		o.Windows = []model.DayWindow{{StartLocal: "09:00", EndLocal: "12:00", IsActive: true}}
		if err := v.ValidateOverride(&o); err == nil {
			t.Error("expected error for closed override with windows")
		}
	})

	t.Run("inverted date range rejected", func(t *testing.T) {
		o := base()
		o.StartDate, o.EndDate = o.EndDate, o.StartDate
		if err := v.ValidateOverride(&o); err == nil {
			t.Error("expected error for inverted range")
		}
	})

	t.Run("single-day range allowed", func(t *testing.T) {
		o := base()
		o.EndDate = o.StartDate
		if err := v.ValidateOverride(&o); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("open override with overlapping windows rejected", func(t *testing.T) {
		o := base()
		o.Windows = []model.DayWindow{
			{StartLocal: "09:00", EndLocal: "13:00", IsActive: true},
			{StartLocal: "12:00", EndLocal: "15:00", IsActive: true},
		}
		if err := v.ValidateOverride(&o); err == nil {
			t.Error("expected error for overlapping windows")
		}
	})

	t.Run("bad date format rejected", func(t *testing.T) {
		o := base()
		o.StartDate = "07/01/2026"
		if err := v.ValidateOverride(&o); err == nil {
			t.Error("expected error for bad date format")
		}
	})
}
