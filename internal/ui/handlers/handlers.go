// Package handlers contains the console's page and ui-api handlers.
//
// Every handler works through the request's auth.Session, so survey API failures are classified once by the client:
// the notifications it raised are rendered with the response and a session ended by the call becomes a redirect to login.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/survey-system/surveyconsole/internal/apperrors"
	"github.com/survey-system/surveyconsole/internal/client"
	"github.com/survey-system/surveyconsole/internal/logger"
	"github.com/survey-system/surveyconsole/internal/ui/auth"
	"github.com/survey-system/surveyconsole/internal/ui/responses"
	"github.com/survey-system/surveyconsole/internal/ui/templates"
)

type HandlerService struct {
	// PublicBaseURL is the base of the fill links given to respondents
	PublicBaseURL string
	Environment   string
}

func NewHandlerService(publicBaseURL, environment string) *HandlerService {
	return &HandlerService{
		PublicBaseURL: publicBaseURL,
		Environment:   environment,
	}
}

// session returns the request's session. The router installs auth.SessionManager.Sessions on every route.
func session(r *http.Request) *auth.Session {
	s, ok := auth.ContextSession(r.Context())
	if !ok {
		panic("handlers: request has no session, SessionManager.Sessions middleware missing")
	}
	return s
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func (h *HandlerService) render(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := component.Render(r.Context(), w); err != nil {
		reqLogger := logger.ContextRequestLogger(r.Context())
		reqLogger.Error("Failed to render page", slog.String("error", err.Error()))
	}
}

// renderPage renders component inside the page shell along with the session's notifications
func (h *HandlerService) renderPage(w http.ResponseWriter, r *http.Request, status int, s *auth.Session, authenticated bool, component templ.Component) {
	h.render(w, r, status, templates.Layout(authenticated, s.Notifications.Notifications(), component))
}

// pageError handles a failed survey API call made while producing a page
func (h *HandlerService) pageError(w http.ResponseWriter, r *http.Request, s *auth.Session, authenticated bool, err error) {
	if target := s.Redirect(); target != "" {
		auth.Redirect(w, r, target)
		return
	}

	var ce *client.ClientError
	if !errors.As(err, &ce) {
		logger.ContextRequestLogger(r.Context()).Error("unexpected error", slog.String("error", err.Error()))
		h.renderPage(w, r, http.StatusInternalServerError, s, authenticated,
			templates.ErrorPage(http.StatusInternalServerError, client.DefaultErrorMessage))
		return
	}

	if isHTMX(r) {
		h.render(w, r, http.StatusOK, templates.ErrorMessage(ce.UserError()))
		return
	}

	status := responses.HTTPStatus(ce)
	h.renderPage(w, r, status, s, authenticated, templates.ErrorPage(status, ce.UserError()))
}

// apiError handles a failed survey API call made by a ui-api handler
func (h *HandlerService) apiError(w http.ResponseWriter, r *http.Request, s *auth.Session, err error) {
	var ce *client.ClientError
	if !errors.As(err, &ce) {
		logger.ContextRequestLogger(r.Context()).Error("unexpected error", slog.String("error", err.Error()))
		responses.RespondWithErrorResponse(w, r, http.StatusInternalServerError, responses.ErrorResponse{
			ErrorCode:     apperrors.ErrCodeInternalError,
			Message:       client.DefaultErrorMessage,
			Notifications: s.Notifications.Notifications(),
		})
		return
	}

	redirect := s.Redirect()
	if redirect != "" && isHTMX(r) {
		w.Header().Set("HX-Redirect", redirect)
	}

	responses.RespondWithErrorResponse(w, r, responses.HTTPStatus(ce), responses.ErrorResponse{
		ErrorCode:     ce.Code(),
		Message:       ce.UserError(),
		Notifications: s.Notifications.Notifications(),
		Redirect:      redirect,
	})
}

func (h *HandlerService) respond(w http.ResponseWriter, status int, s *auth.Session, data any) {
	responses.RespondWithJSON(w, status, responses.SuccessResponse{
		Data:          data,
		Notifications: s.Notifications.Notifications(),
	})
}

// intParam reads a positive integer url parameter, responding with 400 when it is invalid
func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || v <= 0 {
		responses.RespondWithError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidURLParam,
			"invalid "+name+" parameter")
		return 0, false
	}
	return v, true
}

// decodeBody decodes a json request body, responding with 400 when it cannot be decoded
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			responses.RespondWithError(w, r, http.StatusRequestEntityTooLarge, apperrors.ErrCodeRequestTooLarge,
				"request body too large")
			return false
		}
		responses.RespondWithError(w, r, http.StatusBadRequest, apperrors.ErrCodeMalformedBody,
			"could not decode request body: "+err.Error())
		return false
	}
	return true
}
