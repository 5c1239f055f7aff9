// Package responses writes the JSON bodies of the console ui-api.
package responses

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/survey-system/surveyconsole/internal/apperrors"
	"github.com/survey-system/surveyconsole/internal/client"
	"github.com/survey-system/surveyconsole/internal/logger"
)

// ErrorResponse is the body of every failed ui-api request.
// Notifications are the messages the browser should display; Redirect is set when the session has ended.
type ErrorResponse struct {
	ErrorCode     apperrors.ErrorCode   `json:"error_code" example:"resource_not_found"`
	Message       string                `json:"message" example:"Resource not found: Survey not found"`
	Notifications []client.Notification `json:"notifications,omitempty"`
	Redirect      string                `json:"redirect,omitempty"`
	ReqID         string                `json:"request_id,omitempty"`
}

// SuccessResponse wraps successful ui-api data together with any notifications raised while producing it
type SuccessResponse struct {
	Data          any                   `json:"data"`
	Notifications []client.Notification `json:"notifications,omitempty"`
}

func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, errorCode apperrors.ErrorCode, message string) {
	RespondWithErrorResponse(w, r, statusCode, ErrorResponse{
		ErrorCode: errorCode,
		Message:   message,
	})
}

func RespondWithErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, errResponse ErrorResponse) {
	reqLogger := logger.ContextRequestLogger(r.Context())

	level := slog.LevelInfo
	switch {
	case statusCode >= 500:
		level = slog.LevelError
	case statusCode >= 400:
		level = slog.LevelWarn
	}

	reqLogger.LogAttrs(r.Context(), level, "Request failed",
		slog.Int("status", statusCode),
		slog.String("error_code", string(errResponse.ErrorCode)),
		slog.String("error_message", errResponse.Message),
	)

	errResponse.ReqID = middleware.GetReqID(r.Context())

	dat, err := json.Marshal(errResponse)
	if err != nil {
		reqLogger.Error("error marshaling error response", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error_code":"internal_error","message":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(dat)
}

func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error_code":"internal_error","message":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// HTTPStatus is the status the console returns for a failed survey API call.
// Upstream statuses are passed on; failures without a response become gateway errors.
func HTTPStatus(ce *client.ClientError) int {
	if ce.StatusCode >= 400 {
		return ce.StatusCode
	}
	switch ce.Category {
	case client.CategoryNetworkUnreachable:
		return http.StatusBadGateway
	case client.CategoryMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
