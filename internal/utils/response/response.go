package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aaravmahajanofficial/bookstore-api/internal/errors"
	"github.com/go-playground/validator/v10"
)

type APIResponse struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func WriteJson(w http.ResponseWriter, statusCode int, data any) error {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	enc := json.NewEncoder(w)
	// descriptions may carry sanitized markup; keep it readable
	enc.SetEscapeHTML(false)

	return enc.Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, data any) {
	_ = WriteJson(w, statusCode, APIResponse{Success: true, Data: data})
}

// NoContent answers a successful delete. No envelope is written.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes the envelope for err. Anything that is not an AppError is
// reported as a generic 500 so internals never leak to clients.
func Error(w http.ResponseWriter, err error) {
	statusCode, body := fromError(err)
	_ = WriteJson(w, statusCode, APIResponse{Error: body})
}

func fromError(err error) (int, *ErrorResponse) {

	appErr, ok := errors.IsAppError(err)
	if !ok {
		return http.StatusInternalServerError, &ErrorResponse{
			Code:    errors.ErrCodeInternal,
			Message: "An unexpected error occurred",
		}
	}

	body := &ErrorResponse{Code: appErr.Code, Message: appErr.Message}
	if appErr.Detail != "" {
		body.Details = []string{appErr.Detail}
	}

	return appErr.StatusCode, body
}

// ValidationError lists one message per failed field. Field names are the
// JSON names when the validator was built by utils.NewValidator.
func ValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {

	details := make([]string, 0, len(errs))
	for _, fe := range errs {
		details = append(details, fieldMessage(fe))
	}

	_ = WriteJson(w, http.StatusBadRequest, APIResponse{
		Error: &ErrorResponse{
			Code:    errors.ErrCodeValidation,
			Message: "Validation failed",
			Details: details,
		},
	})
}

func fieldMessage(fe validator.FieldError) string {

	field, param := fe.Field(), fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Field %s is required", field)
	case "email":
		return fmt.Sprintf("Field %s must be a valid email address", field)
	case "min":
		if isText(fe) {
			return fmt.Sprintf("Field %s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("Field %s must be at least %s", field, param)
	case "max":
		if isText(fe) {
			return fmt.Sprintf("Field %s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("Field %s must be at most %s", field, param)
	case "gt":
		return fmt.Sprintf("Field %s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("Field %s must be greater than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("Field %s must be one of [%s]", field, param)
	default:
		return fmt.Sprintf("Field %s is invalid: %s=%s", field, fe.Tag(), param)
	}
}

func isText(fe validator.FieldError) bool {
	return fe.Kind().String() == "string"
}
