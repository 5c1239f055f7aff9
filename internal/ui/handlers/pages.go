package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/survey-system/surveyconsole/internal/api"
	"github.com/survey-system/surveyconsole/internal/client"
	"github.com/survey-system/surveyconsole/internal/logger"
	"github.com/survey-system/surveyconsole/internal/surveylink"
	"github.com/survey-system/surveyconsole/internal/ui/auth"
	"github.com/survey-system/surveyconsole/internal/ui/templates"
)

// dashboardSurveyLimit is the number of surveys listed on the dashboard
const dashboardSurveyLimit = 50

// HandleHome redirects to the dashboard if authenticated, login if not
func (h *HandlerService) HandleHome(w http.ResponseWriter, r *http.Request) {
	if h.authenticated(r) {
		http.Redirect(w, r, auth.DashboardPath, http.StatusSeeOther)
		return
	}
	auth.Redirect(w, r, auth.LoginPath)
}

// authenticated reports whether the browser holds a usable credential. Unlike RequireAuth it has no side effects.
func (h *HandlerService) authenticated(r *http.Request) bool {
	s := session(r)
	token, err := s.Client.Credential()
	if err != nil {
		return false
	}
	return s.Client.ValidateCredential(token)
}

func (h *HandlerService) HandleLogin(w http.ResponseWriter, r *http.Request) {
	redirect := r.URL.Query().Get("redirect")

	if h.authenticated(r) {
		http.Redirect(w, r, auth.SafeRedirect(redirect), http.StatusSeeOther)
		return
	}

	s := session(r)
	h.renderPage(w, r, http.StatusOK, s, false, templates.LoginPage("", redirect))
}

// HandleLoginPost logs in with the survey API and stores the credential in the access token cookie
func (h *HandlerService) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	reqLogger := logger.ContextRequestLogger(r.Context())

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	redirect := r.FormValue("redirect")

	if username == "" || password == "" {
		h.loginFailed(w, r, s, redirect, "Please enter your username and password.")
		return
	}

	if _, err := s.API.Users.Login(r.Context(), username, password); err != nil {
		reqLogger.Info("Authentication failed", slog.String("error", err.Error()))
		message := client.DefaultErrorMessage
		var ce *client.ClientError
		if errors.As(err, &ce) {
			message = ce.UserError()
		}
		h.loginFailed(w, r, s, redirect, message)
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(),
		slog.String("username", username),
	)

	auth.Redirect(w, r, auth.SafeRedirect(redirect))
}

func (h *HandlerService) loginFailed(w http.ResponseWriter, r *http.Request, s *auth.Session, redirect, message string) {
	if isHTMX(r) {
		h.render(w, r, http.StatusOK, templates.ErrorMessage(message))
		return
	}
	h.renderPage(w, r, http.StatusUnauthorized, s, false, templates.LoginPage(message, redirect))
}

func (h *HandlerService) HandleLogout(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	if err := s.API.Users.Logout(); err != nil {
		logger.ContextRequestLogger(r.Context()).Error("logout failed", slog.String("error", err.Error()))
	}
	auth.Redirect(w, r, auth.LoginPath)
}

func (h *HandlerService) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	s := session(r)

	user, err := s.API.Users.Me(r.Context())
	if err != nil {
		h.pageError(w, r, s, true, err)
		return
	}

	surveys, err := s.API.Surveys.List(r.Context(), api.Params{
		"skip":  {"0"},
		"limit": {strconv.Itoa(dashboardSurveyLimit)},
	})
	if err != nil {
		h.pageError(w, r, s, true, err)
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(),
		slog.Int("user_id", user.ID),
	)

	h.renderPage(w, r, http.StatusOK, s, true, templates.DashboardPage(user, surveys))
}

// HandleSurveyFill shows a published survey to a respondent. No login is needed.
func (h *HandlerService) HandleSurveyFill(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	surveyID, ok := surveyIDParam(r)
	if !ok {
		h.renderPage(w, r, http.StatusNotFound, s, false, templates.ErrorPage(http.StatusNotFound, "Survey not found."))
		return
	}

	survey, err := s.API.Surveys.ForFilling(r.Context(), surveyID)
	if err != nil {
		h.pageError(w, r, s, false, err)
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(),
		slog.Int("survey_id", surveyID),
	)

	ctx := templates.ContextWithPageTitle(r.Context(), survey.Title)
	h.renderPage(w, r.WithContext(ctx), http.StatusOK, s, false, templates.SurveyFillPage(survey))
}

// HandleSurveyFillPost submits the respondent's answers
func (h *HandlerService) HandleSurveyFillPost(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	surveyID, ok := surveyIDParam(r)
	if !ok {
		h.render(w, r, http.StatusOK, templates.ErrorMessage("Survey not found."))
		return
	}

	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusOK, templates.ErrorMessage("Your answers could not be read, please try again."))
		return
	}

	survey, err := s.API.Surveys.ForFilling(r.Context(), surveyID)
	if err != nil {
		h.pageError(w, r, s, false, err)
		return
	}

	submission := api.AnswerSubmission{Answers: answersFromForm(survey.Questions, r.PostForm)}

	if _, err := s.API.Answers.Submit(r.Context(), surveyID, submission); err != nil {
		h.pageError(w, r, s, false, err)
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(),
		slog.Int("survey_id", surveyID),
		slog.Int("answers", len(submission.Answers)),
	)

	if isHTMX(r) {
		h.render(w, r, http.StatusOK, templates.SurveySubmitted())
		return
	}
	h.renderPage(w, r, http.StatusOK, s, false, templates.SurveySubmitted())
}

// answersFromForm maps the fill form fields onto the survey's questions. Unanswered questions are left out.
func answersFromForm(questions []api.Question, form map[string][]string) []api.AnswerInput {
	answers := make([]api.AnswerInput, 0, len(questions))
	for _, q := range questions {
		values := form[templates.QuestionFieldName(q.ID)]
		if len(values) == 0 || (len(values) == 1 && strings.TrimSpace(values[0]) == "") {
			continue
		}

		var value any
		switch q.Type {
		case api.QuestionMultiChoice:
			value = values
		case api.QuestionNumberInput:
			n, err := strconv.ParseFloat(strings.TrimSpace(values[0]), 64)
			if err != nil {
				value = values[0]
			} else {
				value = n
			}
		default:
			value = values[0]
		}
		answers = append(answers, api.AnswerInput{QuestionID: q.ID, Value: value})
	}
	return answers
}

// HandleSurveyResume sends a respondent holding a survey link back to the fill page
func (h *HandlerService) HandleSurveyResume(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	link := strings.TrimSpace(r.URL.Query().Get("link"))
	if link == "" {
		h.renderPage(w, r, http.StatusOK, s, false, templates.SurveyResumePage())
		return
	}

	surveyID, ok := surveylink.SurveyID(link)
	if !surveylink.IsFillURL(link) || !ok {
		h.renderPage(w, r, http.StatusBadRequest, s, false, templates.ErrorPage(http.StatusBadRequest,
			"That is not a survey link."))
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/survey/fill/%d", surveyID), http.StatusSeeOther)
}

func surveyIDParam(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
