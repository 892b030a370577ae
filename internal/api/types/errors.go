package types

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	apperr "github.com/sirtis/backoffice/pkg/errors"
)

// FromAppError converts any error into the wire error shape. Validation
// errors become per-field messages so clients can render them under the
// offending inputs.
func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = "failed " + fe.Tag() + " validation"
		}
		return &APIError{Code: string(apperr.CodeInvalid), Message: "validation failed", Fields: fields}
	}
	var ae *apperr.AppError
	if errors.As(err, &ae) {
		return &APIError{Code: string(ae.Code), Message: ae.Message}
	}
	return &APIError{Code: string(apperr.CodeUnknown), Message: err.Error()}
}
