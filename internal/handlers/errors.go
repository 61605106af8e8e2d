package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/finance-planner/internal/logger"
	"github.com/sbilibin2017/finance-planner/internal/middlewares"
	"github.com/sbilibin2017/finance-planner/internal/services"
)

// Error codes returned in ErrorResponse.Code
const (
	CodeUnknownProfile     = "UnknownProfile"
	CodeUnknownTransaction = "UnknownTransaction"
	CodeInvalidName        = "InvalidName"
	CodeInvalidLabel       = "InvalidLabel"
	CodeInvalidAmount      = "InvalidAmount"
	CodeInvalidTag         = "InvalidTag"
	CodeInvalidRequest     = "InvalidRequest"
	CodeUnknownError       = "UnknownError"
)

// ErrorResponse represents an API error
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Machine readable error code
	// default: UnknownProfile
	Code string `json:"code"`

	// Error message
	// default: profile not found
	Error string `json:"error"`
}

var errorCodes = []struct {
	err    error
	code   string
	status int
}{
	{services.ErrProfileNotFound, CodeUnknownProfile, http.StatusNotFound},
	{services.ErrTransactionNotFound, CodeUnknownTransaction, http.StatusNotFound},
	{services.ErrInvalidProfileName, CodeInvalidName, http.StatusBadRequest},
	{services.ErrInvalidLabel, CodeInvalidLabel, http.StatusBadRequest},
	{services.ErrInvalidAmount, CodeInvalidAmount, http.StatusBadRequest},
	{services.ErrInvalidTag, CodeInvalidTag, http.StatusBadRequest},
}

// writeError maps a service error to its status code and error body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, status, message := CodeUnknownError, http.StatusInternalServerError, "Internal server error"
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			code, status, message = e.code, e.status, err.Error()
			break
		}
	}
	if status == http.StatusInternalServerError {
		logger.Log.Errorw("request failed", "request_id", middlewares.GetRequestID(r.Context()), "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, ErrorResponse{Code: code, Error: message})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Code: CodeInvalidRequest, Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
