package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"wordquiz/internal/models"
	"wordquiz/internal/utils"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err (or anything it wraps) is a ValidationError
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("calendardate", validateCalendarDate); err != nil {
		panic(fmt.Sprintf("failed to register calendardate validator: %v", err))
	}
	return v
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(utils.DateLayout, fl.Field().String())
	return err == nil
}

// Struct validates v against its `validate` tags and returns the first failure
// as a ValidationError
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("failed to validate: %w", err)
	}

	fe := fieldErrs[0]
	return ValidationError{Field: fieldPath(fe), Message: describe(fe)}
}

// Progress checks that a stored or imported record keeps the record invariants
func Progress(p *models.UserProgress) error {
	if p == nil {
		return ValidationError{Field: "progress", Message: "progress is required"}
	}
	if err := Struct(p); err != nil {
		return err
	}
	if p.DailyWord.Completed && p.DailyWord.Date == "" {
		return ValidationError{Field: "dailyWord.date", Message: "completed daily word needs a date"}
	}
	return nil
}

// ValidateID checks that an identifier such as a category or sticker id is
// present and stored exactly as it would be looked up
func ValidateID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	if id != strings.TrimSpace(id) {
		return ValidationError{Field: field, Message: field + " must not have leading or trailing spaces"}
	}
	if len(id) > 64 {
		return ValidationError{Field: field, Message: field + " must be at most 64 characters"}
	}
	return nil
}

// ValidatePoints checks a score increment
func ValidatePoints(points int) error {
	if points < 0 {
		return ValidationError{Field: "points", Message: "points must not be negative"}
	}
	return nil
}

// ValidateCategoryResult checks the arguments of a category result
func ValidateCategoryResult(categoryID string, stars, score int) error {
	if err := ValidateID("categoryId", categoryID); err != nil {
		return err
	}
	if stars < 0 || stars > models.MaxStars {
		return ValidationError{Field: "stars", Message: fmt.Sprintf("stars must be between 0 and %d", models.MaxStars)}
	}
	if score < 0 {
		return ValidationError{Field: "score", Message: "score must not be negative"}
	}
	return nil
}

func fieldPath(fe validator.FieldError) string {
	// Namespace is "UserProgress.dailyWord.date"; drop the root type name.
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "unique":
		return "must not contain duplicates"
	case "calendardate":
		return "must be a date formatted as YYYY-MM-DD"
	}
	return "failed " + fe.Tag() + " check"
}
