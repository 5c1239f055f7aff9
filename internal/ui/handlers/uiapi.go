package handlers

import (
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/survey-system/surveyconsole/internal/api"
	"github.com/survey-system/surveyconsole/internal/apperrors"
	"github.com/survey-system/surveyconsole/internal/client"
	"github.com/survey-system/surveyconsole/internal/logger"
	"github.com/survey-system/surveyconsole/internal/surveylink"
	"github.com/survey-system/surveyconsole/internal/ui/responses"
)

// SurveyLink is the fill address shared with respondents (the content of the survey's QR code)
type SurveyLink struct {
	SurveyID int    `json:"survey_id"`
	URL      string `json:"url"`
}

// listParams copies the paging and filter parameters the survey API understands
func listParams(r *http.Request) api.Params {
	params := api.Params{}
	for _, key := range []string{"skip", "limit", "status", "organization_id", "search"} {
		if v := r.URL.Query().Get(key); v != "" {
			params.Set(key, v)
		}
	}
	return params
}

func (h *HandlerService) HandleMe(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	user, err := s.API.Users.Me(r.Context())
	if err != nil {
		h.apiError(w, r, s, err)
		return
	}
	h.respond(w, http.StatusOK, s, user)
}

func (h *HandlerService) HandleListSurveys(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	surveys, err := s.API.Surveys.List(r.Context(), listParams(r))
	if err != nil {
		h.apiError(w, r, s, err)
		return
	}
	h.respond(w, http.StatusOK, s, surveys)
}

func (h *HandlerService) HandleGetSurvey(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	surveyID, ok := intParam(w, r, "id")
	if !ok {
		return
	}

	survey, err := s.API.Surveys.Detail(r.Context(), surveyID)
	if err != nil {
		h.apiError(w, r, s, err)
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(), slog.Int("survey_id", surveyID))
	h.respond(w, http.StatusOK, s, survey)
}

func (h *HandlerService) HandleCreateSurvey(w http.ResponseWriter, r *http.Request) {
	s := session(r)

	var req api.SurveyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" {
		responses.RespondWithError(w, r, http.StatusBadRequest, apperrors.ErrCodeMalformedBody, "title is required")
		return
	}

	survey, err := s.API.Surveys.Create(r.Context(), req)
	if err != nil {
		h.apiError(w, r, s, err)
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(), slog.Int("survey_id", survey.ID))
	h.respond(w, http.StatusCreated, s, survey)
}

func (h *HandlerService) HandlePublishSurvey(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, true)
}

func (h *HandlerService) HandleUnpublishSurvey(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, false)
}

func (h *HandlerService) setPublished(w http.ResponseWriter, r *http.Request, publish bool) {
	s := session(r)
	surveyID, ok := intParam(w, r, "id")
	if !ok {
		return
	}

	var (
		survey *api.Survey
		err    error
	)
	if publish {
		survey, err = s.API.Surveys.Publish(r.Context(), surveyID)
	} else {
		survey, err = s.API.Surveys.Unpublish(r.Context(), surveyID)
	}
	if err != nil {
		h.apiError(w, r, s, err)
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(),
		slog.Int("survey_id", surveyID),
		slog.Bool("published", publish),
	)
	h.respond(w, http.StatusOK, s, survey)
}

// HandleSurveyLink returns the respondent fill link for a survey
func (h *HandlerService) HandleSurveyLink(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	surveyID, ok := intParam(w, r, "id")
	if !ok {
		return
	}

	link, err := surveylink.FillURL(h.PublicBaseURL, surveyID)
	if err != nil {
		logger.ContextRequestLogger(r.Context()).Error("could not build survey link",
			slog.String("error", err.Error()),
		)
		responses.RespondWithError(w, r, http.StatusInternalServerError, apperrors.ErrCodeLocalConfiguration,
			"The survey link could not be created, check PUBLIC_BASE_URL.")
		return
	}

	h.respond(w, http.StatusOK, s, SurveyLink{SurveyID: surveyID, URL: link})
}

func (h *HandlerService) HandleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	s := session(r)

	var req api.GenerateQuestionsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Topic == "" {
		responses.RespondWithError(w, r, http.StatusBadRequest, apperrors.ErrCodeMalformedBody, "topic is required")
		return
	}

	generated, err := s.API.LLM.GenerateQuestions(r.Context(), req)
	if err != nil {
		h.apiError(w, r, s, err)
		return
	}
	h.respond(w, http.StatusOK, s, generated)
}

func (h *HandlerService) HandleSurveyAnalytics(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	orgID, ok := intParam(w, r, "orgID")
	if !ok {
		return
	}
	surveyID, ok := intParam(w, r, "id")
	if !ok {
		return
	}

	analytics, err := s.API.Analytics.Survey(r.Context(), orgID, surveyID, nil)
	if err != nil {
		h.apiError(w, r, s, err)
		return
	}
	h.respond(w, http.StatusOK, s, analytics)
}

// HandleExport streams an analytics export to the browser as a download
func (h *HandlerService) HandleExport(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	orgID, ok := intParam(w, r, "orgID")
	if !ok {
		return
	}
	surveyID, ok := intParam(w, r, "id")
	if !ok {
		return
	}

	params := api.Params{}
	if format := r.URL.Query().Get("format"); format != "" {
		params.Set("format", format)
	}

	blob, err := s.API.Analytics.Export(r.Context(), orgID, surveyID, params)
	if err != nil {
		h.apiError(w, r, s, err)
		return
	}

	filename := blob.Filename
	if filename == "" {
		filename = client.SanitizeFilename("survey_" + strconv.Itoa(surveyID) + "_export")
	}
	contentType := blob.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob.Data)
}
