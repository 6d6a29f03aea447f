package pixhttp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/pixkit/pkg/i18n"
	"github.com/dmitrymomot/pixkit/pkg/logger"
	"github.com/dmitrymomot/pixkit/pkg/pix"
	"github.com/dmitrymomot/pixkit/pkg/validator"
)

// Error codes returned in the JSON error envelope.
const (
	CodeValidation      = "validation_error"
	CodeInvalidRequest  = "invalid_request"
	CodeRequestTooLarge = "request_too_large"
	CodeInternal        = "internal_error"
)

// FieldKeyKind names the key kind in validation details.
const FieldKeyKind = "key_kind"

var codeMessages = map[string]string{
	CodeValidation:      "validation failed",
	CodeInvalidRequest:  "malformed request",
	CodeRequestTooLarge: http.StatusText(http.StatusRequestEntityTooLarge),
	CodeInternal:        http.StatusText(http.StatusInternalServerError),
}

type envelope struct {
	Data  any          `json:"data,omitempty"`
	Error *errorDetail `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

type payloadResponse struct {
	Payload  string `json:"payload"`
	Checksum string `json:"checksum"`
	QRCode   string `json:"qrcode"`
}

func respondJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondError writes err as a JSON error envelope in the request language.
func (h *handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, fieldErrs := errorToDetail(err)
	if status >= http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), "request failed", logger.Component("pixhttp"), logger.Error(err))
	} else {
		h.log.DebugContext(r.Context(), "request rejected", logger.Component("pixhttp"), logger.Error(err))
	}

	lang := i18n.GetLocale(r.Context())
	respondJSON(w, status, envelope{Error: &errorDetail{
		Code:    code,
		Message: h.tr.Td(lang, "errors."+code, codeMessages[code]),
		Details: h.localizeErrors(lang, fieldErrs),
	}})
}

// errorToDetail maps an error to its HTTP status, its error code and the
// field errors reported as details.
func errorToDetail(err error) (int, string, validator.ValidationErrors) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, pix.ErrInvalidKeyKind):
		return http.StatusUnprocessableEntity, CodeValidation,
			validator.NewError(FieldKeyKind, err.Error(), "validation.key_kind", nil)
	case validator.IsValidationError(err):
		return http.StatusUnprocessableEntity, CodeValidation, validator.ExtractValidationErrors(err)
	case errors.Is(err, pix.ErrInvalidPayload):
		return http.StatusUnprocessableEntity, CodeValidation,
			validator.NewError(pix.FieldPayload, err.Error(), "validation.invalid_payload", nil)
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, CodeRequestTooLarge, nil
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, CodeInvalidRequest, nil
	default:
		return http.StatusInternalServerError, CodeInternal, nil
	}
}
