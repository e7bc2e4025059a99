package validator

import (
	"errors"
	"fmt"
	"reflect"
	"roombook/pkg/logger"
	"roombook/pkg/model"
	"strings"
	"time"

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

// Fields lists the offending field names, for error details.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for _, err := range v {
		fields = append(fields, err.Field)
	}
	return fields
}

type BookingValidator struct {
	validate    *validator.Validate
	logger      *logger.Logger
	maxDuration time.Duration
}

func NewBookingValidator(log *logger.Logger, maxDuration time.Duration) *BookingValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)
	if err := model.RegisterValidations(v); err != nil {
		log.Fatal("Failed to register booking validations", "error", err)
	}

	log.Info("Booking validator initialized successfully", "max_duration", maxDuration)

	return &BookingValidator{
		validate:    v,
		logger:      log,
		maxDuration: maxDuration,
	}
}

// ValidatePresence checks that every required field is set.
func (v *BookingValidator) ValidatePresence(req *model.BookingRequest) error {
	if req == nil {
		return ValidationErrors{{Field: "body", Message: "request body is required"}}
	}
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

// ValidateInterval checks start < end.
func (v *BookingValidator) ValidateInterval(start, end time.Time) error {
	if !start.Before(end) {
		return ValidationErrors{{Field: "end_time", Message: "start_time must be before end_time"}}
	}
	return nil
}

// ValidateDuration checks the interval does not exceed the configured maximum.
func (v *BookingValidator) ValidateDuration(start, end time.Time) error {
	if end.Sub(start) > v.maxDuration {
		return ValidationErrors{{
			Field:   "end_time",
			Message: fmt.Sprintf("duration must be at most %s", formatHours(v.maxDuration)),
		}}
	}
	return nil
}

func formatHours(d time.Duration) string {
	if d%time.Hour == 0 {
		return fmt.Sprintf("%d hours", int(d/time.Hour))
	}
	return d.String()
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case model.RoomIDTag:
			message = fmt.Sprintf("%s may only contain letters, digits, '-' and '_'", err.Field())
		case "gte":
			message = fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
