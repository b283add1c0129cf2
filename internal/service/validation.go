package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// translateValidation converts validator batch output into the service-level
// ValidationError so every violated field reaches the caller in one response.
func translateValidation(err error) error {
	if err == nil {
		return nil
	}

	var batch validator.ValidationErrors
	if !errors.As(err, &batch) {
		return err
	}

	fields := make([]FieldError, 0, len(batch))
	for _, violation := range batch {
		fields = append(fields, FieldError{
			Field:  violation.Field(),
			Reason: violationReason(violation),
		})
	}

	return &ValidationError{Fields: fields}
}

func violationReason(violation validator.FieldError) string {
	switch violation.Tag() {
	case "required":
		return "is required"
	case "required_unless":
		return "is required for this location type"
	case "gtefield":
		return fmt.Sprintf("must be greater than or equal to %s", violation.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", violation.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", violation.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", violation.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", violation.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", violation.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", violation.Param())
	case "uuid4":
		return "must be a valid identifier"
	default:
		return fmt.Sprintf("failed %s validation", violation.Tag())
	}
}
