// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Envelope is the uniform response body. Clients branch on the status field,
// not the HTTP code: business failures are served as 200 with status:false.
// Only request-schema validation (400) and login (201) deviate.
type Envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(body)
}

func Success(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Envelope{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func SuccessStatus(
	w http.ResponseWriter,
	code int,
	message string,
	data any,
) {
	writeJSON(w, code, Envelope{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func Fail(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Envelope{
		Status:  false,
		Message: message,
	})
}

func FailStatus(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, Envelope{
		Status:  false,
		Message: message,
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, Envelope{
		Status:  false,
		Message: message,
	})
}

// Internal logs the underlying error and hides it from the caller.
func Internal(w http.ResponseWriter, err error) {
	slog.Error("internal error", "error", err)
	writeJSON(w, http.StatusOK, Envelope{
		Status:  false,
		Message: "something went wrong",
	})
}

func FormatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}

	return strings.Join(msgs, "; ")
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return field + " must be at least " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param()
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "numeric":
		return field + " must be numeric"
	case "len":
		return field + " must be exactly " + fe.Param() + " characters"
	default:
		return field + " is invalid"
	}
}
