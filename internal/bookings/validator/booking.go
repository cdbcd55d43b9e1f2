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

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("wallclock", validateWallClock); err != nil {
		log.Fatal("Failed to register 'wallclock' validator", "error", err)
	}
	if err := v.RegisterValidation("datekey", validateDateKey); err != nil {
		log.Fatal("Failed to register 'datekey' validator", "error", err)
	}

	return &BookingValidator{
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

// ValidateRequest checks the wire shape before any timezone math runs.
// Duration bounds live in the struct tags; a request that passes here can
// still lose to availability or conflict checks downstream.
func (v *BookingValidator) ValidateRequest(req *model.BookingRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return v.translate(err)
	}
	return nil
}

// Validate checks the materialized booking right before persistence.
func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		return v.translate(err)
	}
	if !booking.EndTime.After(booking.StartTime) {
		return ValidationErrors{{
			Field:   "EndTime",
			Message: "end_time must be after start_time",
		}}
	}
	return nil
}

func (v *BookingValidator) translate(err error) error {
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
		case "timezone":
			message = fmt.Sprintf("%s must be a valid IANA timezone", fe.Field())
		case "e164":
			message = fmt.Sprintf("%s must be an E.164 phone number", fe.Field())
		case "wallclock":
			message = fmt.Sprintf("%s must be a valid HH:MM time", fe.Field())
		case "datekey":
			message = fmt.Sprintf("%s must be a valid YYYY-MM-DD date", fe.Field())
		case "gtfield":
			message = fmt.Sprintf("%s must be after %s", fe.Field(), fe.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid object id", fe.Field())
		}
		out = append(out, ValidationError{Field: fe.Field(), Message: message})
	}
	return out
}
