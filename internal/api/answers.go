package api

import (
	"context"
	"encoding/json"
	"time"
)

// AnswerInput is one question's answer. Value holds text, a number, or a list of selected option texts.
type AnswerInput struct {
	QuestionID int `json:"question_id"`
	Value      any `json:"answer"`
}

type AnswerSubmission struct {
	ParticipantID *int          `json:"participant_id,omitempty"`
	Answers       []AnswerInput `json:"answers"`
}

type Answer struct {
	ID            int             `json:"id"`
	SurveyID      int             `json:"survey_id"`
	UserID        *int            `json:"user_id,omitempty"`
	ParticipantID *int            `json:"participant_id,omitempty"`
	Answers       json.RawMessage `json:"answers"`
	TotalScore    *float64        `json:"total_score,omitempty"`
	SubmittedAt   time.Time       `json:"submitted_at"`
}

type Answers struct {
	r Requester
}

func (a *Answers) Submit(ctx context.Context, surveyID int, submission AnswerSubmission) (*Answer, error) {
	var answer Answer
	if err := post(ctx, a.r, path("/surveys/%d/answers/", surveyID), submission, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

func (a *Answers) ListForSurvey(ctx context.Context, surveyID int, params Params) ([]Answer, error) {
	var answers []Answer
	if err := get(ctx, a.r, path("/surveys/%d/answers/", surveyID), params, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func (a *Answers) Get(ctx context.Context, id int) (*Answer, error) {
	var answer Answer
	if err := get(ctx, a.r, path("/answers/%d", id), nil, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}
