package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/sirtis/backoffice/internal/api/types"
	apperr "github.com/sirtis/backoffice/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: data})
}

func writeCreated(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: data})
}

// writeError maps the error's code onto the HTTP status and wraps it in the
// envelope; success=false and non-2xx always travel together.
func writeError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, types.APIResponse{Success: false, Error: types.FromAppError(err)})
}

// decodeValid decodes the body into dst and runs struct validation.
func decodeValid(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.New(apperr.CodeInvalid, "invalid json")
	}
	if err := validate.Struct(dst); err != nil {
		return err
	}
	return nil
}
