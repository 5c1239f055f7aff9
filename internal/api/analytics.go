package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/survey-system/surveyconsole/internal/client"
)

// Analytics results are passed through as raw json, their shape is owned by the survey API.
type Analytics struct {
	r Requester
}

// organization level

func (a *Analytics) Overview(ctx context.Context, orgID int) (json.RawMessage, error) {
	return getJSON(ctx, a.r, path("/organizations/%d/analytics/overview", orgID), nil)
}

func (a *Analytics) Trends(ctx context.Context, orgID int, params Params) (json.RawMessage, error) {
	return getJSON(ctx, a.r, path("/organizations/%d/analytics/trends", orgID), params)
}

func (a *Analytics) Participants(ctx context.Context, orgID int, params Params) (json.RawMessage, error) {
	return getJSON(ctx, a.r, path("/organizations/%d/analytics/participants", orgID), params)
}

func (a *Analytics) Comparison(ctx context.Context, orgID int, params Params) (json.RawMessage, error) {
	return getJSON(ctx, a.r, path("/organizations/%d/analytics/comparison", orgID), params)
}

// SurveyComparison compares several surveys of the same organization
func (a *Analytics) SurveyComparison(ctx context.Context, orgID int, surveyIDs []int) (json.RawMessage, error) {
	body := map[string][]int{"survey_ids": surveyIDs}
	return postJSON(ctx, a.r, path("/organizations/%d/analytics/survey-comparison", orgID), body)
}

// EnterpriseComparison compares one survey's results with other organizations that ran it
func (a *Analytics) EnterpriseComparison(ctx context.Context, orgID, surveyID int, compareOrgIDs []int) (json.RawMessage, error) {
	ids := make([]string, len(compareOrgIDs))
	for i, id := range compareOrgIDs {
		ids[i] = strconv.Itoa(id)
	}
	params := Params{}
	params.Set("survey_id", strconv.Itoa(surveyID))
	params.Set("compare_organizations", strings.Join(ids, ","))
	return getJSON(ctx, a.r, path("/organizations/%d/analytics/enterprise-comparison", orgID), params)
}

func (a *Analytics) CrossAnalysis(ctx context.Context, orgID int, params Params) (json.RawMessage, error) {
	return getJSON(ctx, a.r, path("/organizations/%d/analytics/cross-analysis", orgID), params)
}

func (a *Analytics) Tags(ctx context.Context, orgID int, params Params) (json.RawMessage, error) {
	return getJSON(ctx, a.r, path("/organizations/%d/analytics/tags", orgID), params)
}

func (a *Analytics) TagSummary(ctx context.Context, orgID int, params Params) (json.RawMessage, error) {
	return getJSON(ctx, a.r, path("/organizations/%d/analytics/tags/summary", orgID), params)
}

// GlobalEnterpriseComparison compares every organization that ran a survey with the given title
func (a *Analytics) GlobalEnterpriseComparison(ctx context.Context, surveyTitle string) (json.RawMessage, error) {
	params := Params{}
	params.Set("survey_title", surveyTitle)
	return getJSON(ctx, a.r, "/analytics/global-enterprise-comparison", params)
}

// survey level

func surveyAnalytics(orgID, surveyID int, suffix string) string {
	return path("/organizations/%d/surveys/%d/analytics", orgID, surveyID) + suffix
}

func (a *Analytics) Survey(ctx context.Context, orgID, surveyID int, params Params) (json.RawMessage, error) {
	return getJSON(ctx, a.r, surveyAnalytics(orgID, surveyID, ""), params)
}

func (a *Analytics) SurveyTrend(ctx context.Context, orgID, surveyID int, params Params) (json.RawMessage, error) {
	return getJSON(ctx, a.r, surveyAnalytics(orgID, surveyID, "/trend"), params)
}

func (a *Analytics) SurveyTags(ctx context.Context, orgID, surveyID int) (json.RawMessage, error) {
	return getJSON(ctx, a.r, surveyAnalytics(orgID, surveyID, "/tags"), nil)
}

func (a *Analytics) SurveyTag(ctx context.Context, orgID, surveyID, tagID int) (json.RawMessage, error) {
	return getJSON(ctx, a.r, surveyAnalytics(orgID, surveyID, path("/tag/%d", tagID)), nil)
}

func (a *Analytics) SurveyCategory(ctx context.Context, orgID, surveyID, categoryID int) (json.RawMessage, error) {
	return getJSON(ctx, a.r, surveyAnalytics(orgID, surveyID, path("/category/%d", categoryID)), nil)
}

func (a *Analytics) DepartmentComparison(ctx context.Context, orgID, surveyID int) (json.RawMessage, error) {
	return getJSON(ctx, a.r, surveyAnalytics(orgID, surveyID, "/department-comparison"), nil)
}

func (a *Analytics) PositionComparison(ctx context.Context, orgID, surveyID int) (json.RawMessage, error) {
	return getJSON(ctx, a.r, surveyAnalytics(orgID, surveyID, "/position-comparison"), nil)
}

func (a *Analytics) DetailedData(ctx context.Context, orgID, surveyID int, params Params) (json.RawMessage, error) {
	return getJSON(ctx, a.r, surveyAnalytics(orgID, surveyID, "/detailed-data"), params)
}

func (a *Analytics) Realtime(ctx context.Context, orgID, surveyID int) (json.RawMessage, error) {
	return getJSON(ctx, a.r, surveyAnalytics(orgID, surveyID, "/realtime"), nil)
}

func (a *Analytics) Correlation(ctx context.Context, orgID, surveyID int, questionIDs []int) (json.RawMessage, error) {
	body := map[string][]int{"question_ids": questionIDs}
	return postJSON(ctx, a.r, surveyAnalytics(orgID, surveyID, "/correlation"), body)
}

func (a *Analytics) Clustering(ctx context.Context, orgID, surveyID int, options map[string]any) (json.RawMessage, error) {
	return postJSON(ctx, a.r, surveyAnalytics(orgID, surveyID, "/clustering"), nonNil(options))
}

func (a *Analytics) Prediction(ctx context.Context, orgID, surveyID int, options map[string]any) (json.RawMessage, error) {
	return postJSON(ctx, a.r, surveyAnalytics(orgID, surveyID, "/prediction"), nonNil(options))
}

func (a *Analytics) AISummary(ctx context.Context, orgID, surveyID int) (json.RawMessage, error) {
	return getJSON(ctx, a.r, surveyAnalytics(orgID, surveyID, "/ai-summary"), nil)
}

// EnterpriseComparisonAI asks the model to explain an enterprise comparison. Slow.
func (a *Analytics) EnterpriseComparisonAI(ctx context.Context, orgID, surveyID int, comparison map[string]any) (json.RawMessage, error) {
	return postJSON(ctx, a.r, surveyAnalytics(orgID, surveyID, "/enterprise-comparison-ai"), nonNil(comparison))
}

// Export downloads the survey's answers as a file (the format is chosen with params, e.g. format=xlsx)
func (a *Analytics) Export(ctx context.Context, orgID, surveyID int, params Params) (*client.Blob, error) {
	var blob client.Blob
	opts := &client.RequestOptions{Query: params, ResponseKind: client.ResponseBlob}
	if err := a.r.IssueRequest(ctx, http.MethodGet, surveyAnalytics(orgID, surveyID, "/export"), opts, &blob); err != nil {
		return nil, err
	}
	return &blob, nil
}

// question level

func questionAnalytics(orgID, surveyID, questionID int, suffix string) string {
	return path("/organizations/%d/surveys/%d/questions/%d", orgID, surveyID, questionID) + suffix
}

func (a *Analytics) Question(ctx context.Context, orgID, surveyID, questionID int) (json.RawMessage, error) {
	return getJSON(ctx, a.r, questionAnalytics(orgID, surveyID, questionID, "/analytics"), nil)
}

func (a *Analytics) QuestionTrend(ctx context.Context, orgID, surveyID, questionID int) (json.RawMessage, error) {
	return getJSON(ctx, a.r, questionAnalytics(orgID, surveyID, questionID, "/analytics/trend"), nil)
}

func (a *Analytics) QuestionRealtime(ctx context.Context, orgID, surveyID, questionID int) (json.RawMessage, error) {
	return getJSON(ctx, a.r, questionAnalytics(orgID, surveyID, questionID, "/analytics/realtime"), nil)
}

func (a *Analytics) QuestionAIInsights(ctx context.Context, orgID, surveyID, questionID int) (json.RawMessage, error) {
	return getJSON(ctx, a.r, questionAnalytics(orgID, surveyID, questionID, "/ai-insights"), nil)
}

// charts for the analysis pages, addressed by survey only

func (a *Analytics) SurveyStats(ctx context.Context, surveyID int, dimension string) (json.RawMessage, error) {
	if dimension == "" {
		dimension = "department"
	}
	params := Params{}
	params.Set("dimension", dimension)
	return getJSON(ctx, a.r, path("/analysis/survey/%d/stats", surveyID), params)
}

func (a *Analytics) SurveyAISummary(ctx context.Context, surveyID int) (json.RawMessage, error) {
	return getJSON(ctx, a.r, path("/analysis/survey/%d/ai-summary", surveyID), nil)
}

func (a *Analytics) QuestionScores(ctx context.Context, surveyID int, params Params) (json.RawMessage, error) {
	return getJSON(ctx, a.r, path("/analysis/survey/%d/questions/scores", surveyID), params)
}

func (a *Analytics) LineScores(ctx context.Context, surveyID int, params Params) (json.RawMessage, error) {
	return getJSON(ctx, a.r, path("/analysis/survey/%d/line", surveyID), params)
}

func (a *Analytics) PieDistribution(ctx context.Context, surveyID int, params Params) (json.RawMessage, error) {
	return getJSON(ctx, a.r, path("/analysis/survey/%d/pie", surveyID), params)
}

func nonNil(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
