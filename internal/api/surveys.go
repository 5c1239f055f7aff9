package api

import (
	"context"
	"encoding/json"
	"time"
)

type Survey struct {
	ID             int        `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         string     `json:"status,omitempty"`
	OrganizationID *int       `json:"organization_id,omitempty"`
	CreatedBy      *int       `json:"created_by,omitempty"`
	StartTime      *time.Time `json:"start_time,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// SurveyDetail is a survey with its questions
type SurveyDetail struct {
	Survey
	Questions []Question `json:"questions"`
}

type SurveyRequest struct {
	Title          string     `json:"title,omitempty"`
	Description    string     `json:"description,omitempty"`
	OrganizationID *int       `json:"organization_id,omitempty"`
	StartTime      *time.Time `json:"start_time,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty"`
}

// SurveyResponse is a respondent's submission of a whole survey
type SurveyResponse struct {
	ParticipantID *int          `json:"participant_id,omitempty"`
	Answers       []AnswerInput `json:"answers"`
}

type CopySurveyRequest struct {
	Title          string `json:"title,omitempty"`
	OrganizationID *int   `json:"organization_id,omitempty"`
}

type QRCode struct {
	SurveyID int    `json:"survey_id"`
	URL      string `json:"url"`
	QRCode   string `json:"qr_code,omitempty"`
}

type Surveys struct {
	r Requester
}

func (s *Surveys) List(ctx context.Context, params Params) ([]Survey, error) {
	var surveys []Survey
	if err := get(ctx, s.r, "/surveys/", params, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

// ListGlobal lists the surveys of every organization (admin)
func (s *Surveys) ListGlobal(ctx context.Context, params Params) ([]Survey, error) {
	var surveys []Survey
	if err := get(ctx, s.r, "/surveys/global/all", params, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (s *Surveys) Get(ctx context.Context, id int) (*Survey, error) {
	var survey Survey
	if err := get(ctx, s.r, path("/surveys/%d", id), nil, &survey); err != nil {
		return nil, err
	}
	return &survey, nil
}

func (s *Surveys) Detail(ctx context.Context, id int) (*SurveyDetail, error) {
	var detail SurveyDetail
	if err := get(ctx, s.r, path("/surveys/%d/detail", id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *Surveys) Create(ctx context.Context, req SurveyRequest) (*Survey, error) {
	var survey Survey
	if err := post(ctx, s.r, "/surveys/", req, &survey); err != nil {
		return nil, err
	}
	return &survey, nil
}

func (s *Surveys) Update(ctx context.Context, id int, req SurveyRequest) (*Survey, error) {
	var survey Survey
	if err := put(ctx, s.r, path("/surveys/%d", id), req, &survey); err != nil {
		return nil, err
	}
	return &survey, nil
}

func (s *Surveys) Delete(ctx context.Context, id int) error {
	return del(ctx, s.r, path("/surveys/%d", id))
}

func (s *Surveys) Publish(ctx context.Context, id int) (*Survey, error) {
	var survey Survey
	if err := post(ctx, s.r, path("/surveys/%d/publish", id), nil, &survey); err != nil {
		return nil, err
	}
	return &survey, nil
}

func (s *Surveys) Unpublish(ctx context.Context, id int) (*Survey, error) {
	var survey Survey
	if err := post(ctx, s.r, path("/surveys/%d/unpublish", id), nil, &survey); err != nil {
		return nil, err
	}
	return &survey, nil
}

// ForFilling returns the public view of a survey shown to respondents
func (s *Surveys) ForFilling(ctx context.Context, id int) (*SurveyDetail, error) {
	var detail SurveyDetail
	if err := get(ctx, s.r, path("/surveys/%d/fill", id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *Surveys) Questions(ctx context.Context, id int) ([]Question, error) {
	var questions []Question
	if err := get(ctx, s.r, path("/surveys/%d/questions", id), nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *Surveys) SubmitResponse(ctx context.Context, id int, resp SurveyResponse) (json.RawMessage, error) {
	var out json.RawMessage
	if err := post(ctx, s.r, path("/surveys/%d/responses", id), resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Surveys) Responses(ctx context.Context, id int, params Params) (json.RawMessage, error) {
	var out json.RawMessage
	if err := get(ctx, s.r, path("/surveys/%d/responses", id), params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Surveys) Statistics(ctx context.Context, id int) (json.RawMessage, error) {
	return getJSON(ctx, s.r, path("/surveys/%d/statistics", id), nil)
}

// GenerateQRCode asks the survey API for a QR code of the fill link. options (size, format...) are passed through.
func (s *Surveys) GenerateQRCode(ctx context.Context, id int, options map[string]any) (*QRCode, error) {
	if options == nil {
		options = map[string]any{}
	}
	var qr QRCode
	if err := post(ctx, s.r, path("/surveys/%d/qrcode", id), options, &qr); err != nil {
		return nil, err
	}
	return &qr, nil
}

// Copy duplicates a survey and its questions as a new draft
func (s *Surveys) Copy(ctx context.Context, id int, req CopySurveyRequest) (*Survey, error) {
	var survey Survey
	if err := post(ctx, s.r, path("/surveys/%d/copy", id), req, &survey); err != nil {
		return nil, err
	}
	return &survey, nil
}
