package httperr

import (
	"encoding/json"
	"net/http"

	"github.com/ima-jin/imajin-chat/pkg/errors"
	"github.com/ima-jin/imajin-chat/pkg/logger"
)

// Status maps a taxonomy code to its HTTP status.
func Status(code errors.Code) int {
	switch code {
	case errors.CodeInvalidArgument:
		return http.StatusBadRequest
	case errors.CodeUnauthenticated:
		return http.StatusUnauthorized
	case errors.CodePermissionDenied:
		return http.StatusForbidden
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeAlreadyExists:
		return http.StatusConflict
	case errors.CodeGone:
		return http.StatusGone
	case errors.CodeFailedPrecondition:
		return http.StatusPreconditionFailed
	case errors.CodeUnavailable:
		return http.StatusServiceUnavailable
	case errors.CodeDeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// RespondError writes err as a JSON error body. Internal errors are logged
// with their cause and reported generically so storage detail never reaches
// the caller.
func RespondError(w http.ResponseWriter, log logger.Logger, err error) {
	code := errors.CodeOf(err)
	body := errorBody{Code: code, Message: err.Error()}

	if Status(code) >= http.StatusInternalServerError {
		log.Error("request failed", "err", err)
		body.Message = "internal server error"
		if code == errors.CodeUnavailable {
			body.Message = "upstream service unavailable"
		}
	}

	RespondJSON(w, Status(code), body)
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
