package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/NaumanGems/Nauman-gems/pkg/errors"
	"github.com/NaumanGems/Nauman-gems/pkg/validator"
)

// Response is the standard API response envelope.
type Response struct {
	Data  any        `json:"data,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
}

// ErrorBody is the error portion of a response.
type ErrorBody struct {
	Code    string                      `json:"code"`
	Message string                      `json:"message"`
	Fields  []validator.ValidationError `json:"fields,omitempty"`
}

// WriteJSON writes a success response with the given status and data.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Data: data})
}

// WriteError writes an error response, mapping the error to an HTTP status.
func WriteError(w http.ResponseWriter, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		WriteValidationError(w, ve)
		return
	}

	status := apperrors.HTTPStatus(err)
	body := &ErrorBody{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		body.Code = appErr.Code
		body.Message = appErr.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Error: body})
}

// WriteValidationError writes a 400 response with field-level details.
func WriteValidationError(w http.ResponseWriter, ve validator.ValidationErrors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(Response{Error: &ErrorBody{
		Code:    "VALIDATION_FAILED",
		Message: "request validation failed",
		Fields:  ve,
	}})
}

// DecodeJSON decodes the request body into dst, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.InvalidInput("invalid request body")
	}
	return nil
}
