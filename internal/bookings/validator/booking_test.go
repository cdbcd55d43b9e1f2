package validator

import (
	"testing"
	"time"

	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"
)

func newTestValidator() *BookingValidator {
	return NewBookingValidator(logger.New(logger.Config{Level: "error", Service: "test"}))
}

func validRequest() model.BookingRequest {
	return model.BookingRequest{
		ResourceID:      "res-1",
		LocationID:      "loc-1",
		Date:            "2026-06-02",
		StartLocal:      "10:00",
		DurationMinutes: 60,
		Timezone:        "America/Los_Angeles",
		Patient: model.Patient{
			Name:  "Dana Whitfield",
			Phone: "+14155550123",
		},
	}
}

func TestValidateRequest(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name    string
		mutate  func(req *model.BookingRequest)
		wantErr bool
	}{
		{
			name:   "valid request",
			mutate: func(req *model.BookingRequest) {},
		},
		{
			name:   "resource optional at this layer",
			mutate: func(req *model.BookingRequest) { req.ResourceID = "" },
		},
		{
			name:    "missing location",
			mutate:  func(req *model.BookingRequest) { req.LocationID = "" },
			wantErr: true,
		},
		{
			name:    "malformed date",
			mutate:  func(req *model.BookingRequest) { req.Date = "06/02/2026" },
			wantErr: true,
		},
		{
			name:    "malformed start clock",
			mutate:  func(req *model.BookingRequest) { req.StartLocal = "10am" },
			wantErr: true,
		},
		{
			name:    "out of range start clock",
			mutate:  func(req *model.BookingRequest) { req.StartLocal = "24:00" },
			wantErr: true,
		},
		{
			name:    "duration below minimum",
			mutate:  func(req *model.BookingRequest) { req.DurationMinutes = 3 },
			wantErr: true,
		},
		{
			name:    "duration above maximum",
			mutate:  func(req *model.BookingRequest) { req.DurationMinutes = 600 },
			wantErr: true,
		},
		{
			name:    "unknown timezone",
			mutate:  func(req *model.BookingRequest) { req.Timezone = "Mars/Olympus" },
			wantErr: true,
		},
		{
			name:   "timezone optional",
			mutate: func(req *model.BookingRequest) { req.Timezone = "" },
		},
		{
			name:    "patient name too short",
			mutate:  func(req *model.BookingRequest) { req.Patient.Name = "D" },
			wantErr: true,
		},
		{
			name:    "patient phone not E.164",
			mutate:  func(req *model.BookingRequest) { req.Patient.Phone = "415-555-0123" },
			wantErr: true,
		},
		{
			name:   "patient phone optional",
			mutate: func(req *model.BookingRequest) { req.Patient.Phone = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := v.ValidateRequest(&req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequest(%+v) error = %v, wantErr %v", req, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBooking(t *testing.T) {
	v := newTestValidator()
	start := time.Date(2026, 6, 2, 17, 0, 0, 0, time.UTC)

	valid := func() model.Booking {
		return model.Booking{
			ResourceID:      "res-1",
			LocationID:      "loc-1",
			StartTime:       start,
			EndTime:         start.Add(time.Hour),
			DurationMinutes: 60,
			Status:          "pending",
			Timezone:        "America/Los_Angeles",
			Patient: model.Patient{
				Name:  "Dana Whitfield",
				Phone: "+14155550123",
			},
		}
	}

	t.Run("valid booking", func(t *testing.T) {
		booking := valid()
		if err := v.Validate(&booking); err != nil {
			t.Errorf("Validate() unexpected error: %v", err)
		}
	})

	t.Run("end not after start", func(t *testing.T) {
		booking := valid()
		booking.EndTime = booking.StartTime
		if err := v.Validate(&booking); err == nil {
			t.Error("Validate() expected error for zero length interval")
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		booking := valid()
		booking.Status = "archived"
		if err := v.Validate(&booking); err == nil {
			t.Error("Validate() expected error for unknown status")
		}
	})

	t.Run("non-hex id", func(t *testing.T) {
		booking := valid()
		booking.ID = "booking-1"
		if err := v.Validate(&booking); err == nil {
			t.Error("Validate() expected error for non ObjectID id")
		}
	})
}
