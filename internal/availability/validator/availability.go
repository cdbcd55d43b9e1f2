package validator

import (
	"errors"
	"fmt"
	"strings"

	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"
	"clinicbook/pkg/wallclock"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type AvailabilityValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func New(log *logger.Logger) *AvailabilityValidator {
	v := validator.New()

	if err := v.RegisterValidation("wallclock", validateWallClock); err != nil {
		log.Fatal("Failed to register 'wallclock' validator", "error", err)
	}
	if err := v.RegisterValidation("datekey", validateDateKey); err != nil {
		log.Fatal("Failed to register 'datekey' validator", "error", err)
	}

	return &AvailabilityValidator{
		validate: v,
		logger:   log,
	}
}

func validateWallClock(fl validator.FieldLevel) bool {
	_, err := wallclock.ParseClock(fl.Field().String())
	return err == nil
}

func validateDateKey(fl validator.FieldLevel) bool {
	_, err := wallclock.ParseDate(fl.Field().String())
	return err == nil
}

func (v *AvailabilityValidator) ValidateHoursUpsert(up *model.HoursUpsert) error {
	if err := v.validate.Struct(up); err != nil {
		return v.translate(err)
	}
	return nil
}

// ValidateWindow checks a single window's shape: well-formed clocks and
// start strictly before end.
func (v *AvailabilityValidator) ValidateWindow(w *model.DayWindow) error {
	if err := v.validate.Struct(w); err != nil {
		return v.translate(err)
	}
	if w.StartLocal >= w.EndLocal {
		return ValidationErrors{{
			Field:   "EndLocal",
			Message: "end_local must be after start_local",
		}}
	}
	return nil
}

// ValidateWindowSet rejects any pair of active windows that overlap within
// one day. The stored windows are the source of truth for availability, so
// malformed sets are refused at write time instead of being interpreted
// downstream.
func (v *AvailabilityValidator) ValidateWindowSet(windows []model.DayWindow) error {
	for i := range windows {
		if !windows[i].IsActive {
			continue
		}
		for j := i + 1; j < len(windows); j++ {
			if !windows[j].IsActive {
				continue
			}
			if spansOverlap(windows[i], windows[j]) {
				return ValidationErrors{{
					Field: "Windows",
					Message: fmt.Sprintf("window %s-%s overlaps window %s-%s",
						windows[i].StartLocal, windows[i].EndLocal,
						windows[j].StartLocal, windows[j].EndLocal),
				}}
			}
		}
	}
	return nil
}

// spansOverlap compares fixed-width "HH:MM" strings; lexicographic order
// is chronological order for them.
func spansOverlap(a, b model.DayWindow) bool {
	return a.StartLocal < b.EndLocal && b.StartLocal < a.EndLocal
}

func (v *AvailabilityValidator) ValidateOverride(o *model.DateOverride) error {
	if err := v.validate.Struct(o); err != nil {
		return v.translate(err)
	}
	if o.StartDate > o.EndDate {
		return ValidationErrors{{
			Field:   "EndDate",
			Message: "end_date must not precede start_date",
		}}
	}
	if o.IsClosed && len(o.Windows) > 0 {
		return ValidationErrors{{
			Field:   "Windows",
			Message: "a closed override cannot define windows",
		}}
	}
	for i := range o.Windows {
		if err := v.ValidateWindow(&o.Windows[i]); err != nil {
			return err
		}
	}
	return v.ValidateWindowSet(o.Windows)
}

func (v *AvailabilityValidator) ValidateOverridePatch(patch *model.DateOverridePatch) error {
	if err := v.validate.Struct(patch); err != nil {
		return v.translate(err)
	}
	return nil
}

func (v *AvailabilityValidator) ValidateWindowPatch(patch *model.DayWindowPatch) error {
	if err := v.validate.Struct(patch); err != nil {
		return v.translate(err)
	}
	return nil
}

func (v *AvailabilityValidator) translate(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	var out ValidationErrors
	for _, fe := range validationErrs {
		message := fe.Error()
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fe.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
		case "wallclock":
			message = fmt.Sprintf("%s must be a wall-clock time in HH:MM format", fe.Field())
		case "datekey":
			message = fmt.Sprintf("%s must be a calendar date in YYYY-MM-DD format", fe.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", fe.Field())
		case "uuid4":
			message = fmt.Sprintf("%s must be a valid UUID", fe.Field())
		}
		out = append(out, ValidationError{Field: fe.Field(), Message: message})
	}
	return out
}
