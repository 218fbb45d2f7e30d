package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/calendar"
	playground "github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

var (
	engine     *playground.Validate
	engineOnce sync.Once
)

func structEngine() *playground.Validate {
	engineOnce.Do(func() {
		engine = playground.New(playground.WithRequiredStructEnabled())
		// Report json names so messages match the request payload.
		engine.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = engine.RegisterValidation("month", func(fl playground.FieldLevel) bool {
			return IsValidMonth(fl.Field().String())
		})
		_ = engine.RegisterValidation("clock", func(fl playground.FieldLevel) bool {
			return IsValidClock(fl.Field().String())
		})
	})
	return engine
}

// Struct validates `validate` struct tags and returns ValidationErrors keyed by
// json field name, or nil.
func Struct(s interface{}) error {
	err := structEngine().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{
			Field:   fieldPath(fe),
			Message: tagMessage(fe),
		})
	}
	return errs
}

// fieldPath drops the top level struct name from the namespace.
func fieldPath(fe playground.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func tagMessage(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required", "required_unless":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "oneof":
		return fe.Field() + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must not exceed %s", fe.Field(), fe.Param())
	case "month":
		return fe.Field() + " must be in YYYY-MM format"
	case "clock":
		return fe.Field() + " must be in HH:MM format"
	case "latitude", "longitude":
		return fe.Field() + " must be a valid " + fe.Tag()
	default:
		return fe.Field() + " is invalid"
	}
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var monthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// IsValidMonth checks the YYYY-MM month key format.
func IsValidMonth(month string) bool {
	return monthRegex.MatchString(month)
}

var clockRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// IsValidClock checks a 24h HH:MM wall clock time.
func IsValidClock(clock string) bool {
	return clockRegex.MatchString(clock)
}

// MonthParam parses a YYYY-MM value, reporting a bad value as a validation
// error on field.
func MonthParam(field, value string) (calendar.Month, error) {
	m, err := calendar.ParseMonth(value)
	if err != nil || !IsValidMonth(value) {
		return calendar.Month{}, ValidationErrors{{Field: field, Message: field + " must be in YYYY-MM format"}}
	}
	return m, nil
}
