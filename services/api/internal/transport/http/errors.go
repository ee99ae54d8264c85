package http

import (
	"encoding/json"
	"net/http"

	"github.com/jkbrookover/events-ii/services/api/internal/domain"
)

const (
	codeMethodNotAllowed     = "method_not_allowed"
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeValidationFailed     = "validation_failed"
	codeInvalidID            = "invalid_id"
	codeInvalidScope         = "invalid_scope"
	codeEventNotFound        = "event_not_found"
	codeRegistrationNotFound = "registration_not_found"
	codeLikeNotFound         = "like_not_found"
	codeUserNotFound         = "user_not_found"
	codeSoldOut              = "sold_out"
	codeAlreadyRegistered    = "already_registered"
	codeAlreadyLiked         = "already_liked"
	codeEmailTaken           = "email_taken"
	codeInvalidCredentials   = "invalid_credentials"
	codeNameRequired         = "name_required"
	codeEmailRequired        = "email_required"
	codePasswordTooShort     = "password_too_short"
	codeForbidden            = "forbidden"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

type validationErrorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields []domain.FieldError `json:"fields"`
}

// writeValidationError renders every failing field so clients can key
// messages by attribute, mirroring the shape of domain.ValidationErrors.
func writeValidationError(w http.ResponseWriter, verrs domain.ValidationErrors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(validationErrorResponse{
		Error:  "validation failed",
		Code:   codeValidationFailed,
		Fields: verrs,
	})
}
