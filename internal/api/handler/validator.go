package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/feedstream/feed-api/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call
// c.Validate(req). Field errors are aggregated into a
// *domain.ValidationError so the central error handler renders the full
// violation list, mirroring what the domain services return.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to
// echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			violations := make([]domain.FieldViolation, 0, len(ve))
			for _, fe := range ve {
				violations = append(violations, fieldViolation(fe))
			}
			return &domain.ValidationError{Violations: violations}
		}
		return err
	}
	return nil
}

// fieldViolation converts a single validator error into a human-readable
// violation.
func fieldViolation(fe validator.FieldError) domain.FieldViolation {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return domain.FieldViolation{Field: field, Message: "is required"}
	case "email":
		return domain.FieldViolation{Field: field, Message: "must be a valid email address"}
	case "min":
		return domain.FieldViolation{Field: field, Message: fmt.Sprintf("must be at least %s characters", fe.Param())}
	default:
		return domain.FieldViolation{Field: field, Message: fmt.Sprintf("failed validation (%s)", fe.Tag())}
	}
}
