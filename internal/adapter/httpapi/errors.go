package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"coffee-scheduler/internal/domain"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func statusForCode(code domain.ErrorCode) (int, string) {
	switch code {
	case domain.ErrorCodeDuplicateID:
		return http.StatusConflict, "DUPLICATE_ID"
	case domain.ErrorCodeNotFound:
		return http.StatusNotFound, "NOT_FOUND"
	case domain.ErrorCodeInvalidState:
		return http.StatusConflict, "INVALID_STATE"
	case domain.ErrorCodeInvalidTransition:
		return http.StatusConflict, "INVALID_TRANSITION"
	case domain.ErrorCodeValidationFailed:
		return http.StatusBadRequest, "VALIDATION_FAILED"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	resp := errorResponse{Code: "INTERNAL", Message: "internal error"}

	var domainErr domain.Error
	if errors.As(err, &domainErr) {
		status, resp.Code = statusForCode(domainErr.Code)
		resp.Message = domainErr.Message
	} else {
		slog.Error("unhandled error", "error", err)
	}

	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("response write failed", "error", err)
	}
}
