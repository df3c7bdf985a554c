package web

// errors.go turns conversion failures into JSON error responses.
//
// The technical error is logged with the request ID; the client receives the
// mapped core.UserMessage so it can quote the code back.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/convertidor/internal/core"
	"github.com/JonMunkholm/convertidor/internal/logging"
)

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes its user-facing form as JSON. Errors
// without a known code are logged in full but reported to the client only
// by their generic message.
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	ue := core.NewUserError(err)

	logger := logging.FromContext(r.Context())
	level := slog.LevelWarn
	detail := ue.Technical.Error()
	if !core.IsUserFacing(err) {
		level = slog.LevelError
		detail = ue.Error()
	}
	logger.Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", ue.Technical.Error(),
		"code", ue.User.Code,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   detail,
		Message: ue.User.Message,
		Action:  ue.User.Action,
		Code:    ue.User.Code,
	})
}

// statusFor picks the HTTP status for a conversion error. Problems with the
// request are 4xx; problems with the server's descriptors are 5xx.
func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrMissingArgument),
		errors.Is(err, core.ErrFileRead),
		errors.Is(err, core.ErrUnknownStrategy),
		errors.Is(err, core.ErrUnknownEncoding):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrBusy):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes v as JSON and writes it to w.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
	}
}
