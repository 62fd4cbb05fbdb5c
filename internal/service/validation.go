package service

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/auth"
	apperrors "github.com/ArigalaPunithKumar/Alumnus-Backend/pkg/util"
)

const minPasswordLength = 6

var passwordRules = []validation.Rule{
	validation.Required,
	validation.Length(minPasswordLength, 0).Error("Password must be at least 6 characters"),
	validation.By(maxPasswordBytes),
}

// maxPasswordBytes rejects input bcrypt cannot hash. Length counts runes,
// the limit is in bytes.
func maxPasswordBytes(value interface{}) error {
	s, _ := value.(string)
	if len(s) > auth.MaxPasswordBytes {
		return errors.New("Password must be at most 72 bytes")
	}
	return nil
}

var emailRules = []validation.Rule{
	validation.Required,
	is.Email.Error("Please provide a valid email address format."),
}

// validationFailed converts ozzo field errors into a VALIDATION_FAILED
// domain error with one detail entry per field.
func validationFailed(err error) error {
	if err == nil {
		return nil
	}
	var fields validation.Errors
	if !errors.As(err, &fields) {
		return apperrors.NewInternalError(err)
	}
	details := make(map[string]any, len(fields))
	for name, fieldErr := range fields {
		details[name] = fieldErr.Error()
	}
	return apperrors.NewValidationError("Validation failed", details)
}
