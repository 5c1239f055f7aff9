package api

import "context"

type GenerateQuestionsRequest struct {
	Topic        string `json:"topic"`
	NumQuestions int    `json:"num_questions"`
}

type GenerateQuestionsResponse struct {
	Questions []string `json:"questions"`
}

type SummarizeAnswersRequest struct {
	QuestionText string   `json:"question_text"`
	Answers      []string `json:"answers"`
}

type SummarizeAnswersResponse struct {
	QuestionText string `json:"question_text"`
	Summary      string `json:"summary"`
}

type SurveySummaryResponse struct {
	SurveyTitle  string         `json:"survey_title"`
	TotalAnswers int            `json:"total_answers"`
	GeneratedAt  string         `json:"generated_at"`
	Summary      string         `json:"summary"`
	KeyMetrics   map[string]any `json:"key_metrics"`
}

type QuestionInsightsResponse struct {
	QuestionID           string         `json:"question_id"`
	QuestionText         string         `json:"question_text"`
	TotalResponses       int            `json:"total_responses"`
	Insights             string         `json:"insights"`
	ResponseDistribution map[string]any `json:"response_distribution"`
	AnalysisTimestamp    string         `json:"analysis_timestamp"`
}

// LLM wraps the model-assisted endpoints. These can take minutes, which is why the client timeout is long.
type LLM struct {
	r Requester
}

func (l *LLM) GenerateQuestions(ctx context.Context, req GenerateQuestionsRequest) (*GenerateQuestionsResponse, error) {
	if req.NumQuestions == 0 {
		req.NumQuestions = 5
	}
	var out GenerateQuestionsResponse
	if err := post(ctx, l.r, "/llm/generate_questions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (l *LLM) SummarizeAnswers(ctx context.Context, req SummarizeAnswersRequest) (*SummarizeAnswersResponse, error) {
	var out SummarizeAnswersResponse
	if err := post(ctx, l.r, "/llm/summarize_answers", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateSurveySummary passes surveyData through unchanged
func (l *LLM) GenerateSurveySummary(ctx context.Context, surveyData map[string]any) (*SurveySummaryResponse, error) {
	var out SurveySummaryResponse
	body := map[string]any{"survey_data": surveyData}
	if err := post(ctx, l.r, "/llm/generate_survey_summary", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (l *LLM) GenerateQuestionInsights(ctx context.Context, questionData map[string]any) (*QuestionInsightsResponse, error) {
	var out QuestionInsightsResponse
	body := map[string]any{"question_data": questionData}
	if err := post(ctx, l.r, "/llm/generate_question_insights", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
