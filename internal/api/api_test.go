package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/survey-system/surveyconsole/internal/client"
)

type call struct {
	method string
	path   string
	opts   *client.RequestOptions
}

// fakeRequester records calls and answers each with response (decoded into out)
type fakeRequester struct {
	calls    []call
	response string
	err      error
	saved    string
	cleared  bool
}

func (f *fakeRequester) IssueRequest(_ context.Context, method, path string, opts *client.RequestOptions, out any) error {
	f.calls = append(f.calls, call{method, path, opts})
	if f.err != nil {
		return f.err
	}
	if out != nil && f.response != "" {
		return json.Unmarshal([]byte(f.response), out)
	}
	return nil
}

func (f *fakeRequester) SaveCredential(token string) error {
	f.saved = token
	return nil
}

func (f *fakeRequester) ClearCredential() error {
	f.cleared = true
	return nil
}

func (f *fakeRequester) last(t *testing.T) call {
	t.Helper()
	if len(f.calls) == 0 {
		t.Fatal("no request was issued")
	}
	return f.calls[len(f.calls)-1]
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		do         func(a *API) error
		wantMethod string
		wantPath   string
	}{
		{"users register", func(a *API) error { _, err := a.Users.Register(ctx, RegisterRequest{}); return err }, "POST", "/users/register"},
		{"users me", func(a *API) error { _, err := a.Users.Me(ctx); return err }, "GET", "/users/me"},
		{"users update me", func(a *API) error { _, err := a.Users.UpdateMe(ctx, UpdateUserRequest{}); return err }, "PUT", "/users/me"},
		{"users change password", func(a *API) error { return a.Users.ChangePassword(ctx, ChangePasswordRequest{}) }, "PUT", "/users/me/password"},
		{"users list", func(a *API) error { _, err := a.Users.List(ctx, nil); return err }, "GET", "/users/"},

		{"surveys list", func(a *API) error { _, err := a.Surveys.List(ctx, nil); return err }, "GET", "/surveys/"},
		{"surveys global", func(a *API) error { _, err := a.Surveys.ListGlobal(ctx, nil); return err }, "GET", "/surveys/global/all"},
		{"surveys get", func(a *API) error { _, err := a.Surveys.Get(ctx, 42); return err }, "GET", "/surveys/42"},
		{"surveys detail", func(a *API) error { _, err := a.Surveys.Detail(ctx, 42); return err }, "GET", "/surveys/42/detail"},
		{"surveys create", func(a *API) error { _, err := a.Surveys.Create(ctx, SurveyRequest{}); return err }, "POST", "/surveys/"},
		{"surveys update", func(a *API) error { _, err := a.Surveys.Update(ctx, 42, SurveyRequest{}); return err }, "PUT", "/surveys/42"},
		{"surveys delete", func(a *API) error { return a.Surveys.Delete(ctx, 42) }, "DELETE", "/surveys/42"},
		{"surveys publish", func(a *API) error { _, err := a.Surveys.Publish(ctx, 42); return err }, "POST", "/surveys/42/publish"},
		{"surveys unpublish", func(a *API) error { _, err := a.Surveys.Unpublish(ctx, 42); return err }, "POST", "/surveys/42/unpublish"},
		{"surveys fill", func(a *API) error { _, err := a.Surveys.ForFilling(ctx, 42); return err }, "GET", "/surveys/42/fill"},
		{"surveys questions", func(a *API) error { _, err := a.Surveys.Questions(ctx, 42); return err }, "GET", "/surveys/42/questions"},
		{"surveys submit response", func(a *API) error { _, err := a.Surveys.SubmitResponse(ctx, 42, SurveyResponse{}); return err }, "POST", "/surveys/42/responses"},
		{"surveys responses", func(a *API) error { _, err := a.Surveys.Responses(ctx, 42, nil); return err }, "GET", "/surveys/42/responses"},
		{"surveys statistics", func(a *API) error { _, err := a.Surveys.Statistics(ctx, 42); return err }, "GET", "/surveys/42/statistics"},
		{"surveys qrcode", func(a *API) error { _, err := a.Surveys.GenerateQRCode(ctx, 42, nil); return err }, "POST", "/surveys/42/qrcode"},
		{"surveys copy", func(a *API) error { _, err := a.Surveys.Copy(ctx, 42, CopySurveyRequest{}); return err }, "POST", "/surveys/42/copy"},

		{"questions list", func(a *API) error { _, err := a.Questions.List(ctx, nil); return err }, "GET", "/questions/"},
		{"questions get", func(a *API) error { _, err := a.Questions.Get(ctx, 5); return err }, "GET", "/questions/5"},
		{"questions create", func(a *API) error { _, err := a.Questions.Create(ctx, QuestionRequest{}); return err }, "POST", "/questions/"},
		{"questions update", func(a *API) error { _, err := a.Questions.Update(ctx, 5, QuestionRequest{}); return err }, "PUT", "/questions/5"},
		{"questions delete", func(a *API) error { return a.Questions.Delete(ctx, 5) }, "DELETE", "/questions/5"},
		{"questions add to survey", func(a *API) error { _, err := a.Questions.AddToSurvey(ctx, 42, QuestionRequest{}); return err }, "POST", "/surveys/42/questions/"},
		{"questions list for survey", func(a *API) error { _, err := a.Questions.ListForSurvey(ctx, 42, nil); return err }, "GET", "/surveys/42/questions/"},
		{"questions update in survey", func(a *API) error { _, err := a.Questions.UpdateInSurvey(ctx, 42, 5, QuestionRequest{}); return err }, "PUT", "/surveys/42/questions/5"},
		{"questions delete from survey", func(a *API) error { return a.Questions.DeleteFromSurvey(ctx, 42, 5) }, "DELETE", "/surveys/42/questions/5"},
		{"questions reorder", func(a *API) error { return a.Questions.Reorder(ctx, 42, []int{3, 1, 2}) }, "PUT", "/surveys/42/questions/reorder"},
		{"questions organization list", func(a *API) error { _, err := a.Questions.ListForOrganization(ctx, 1, nil); return err }, "GET", "/organizations/1/questions/"},
		{"questions organization create", func(a *API) error { _, err := a.Questions.CreateForOrganization(ctx, 1, QuestionRequest{}); return err }, "POST", "/organizations/1/questions/"},
		{"categories list", func(a *API) error { _, err := a.Questions.Categories(ctx, nil); return err }, "GET", "/categories"},
		{"categories tree", func(a *API) error { _, err := a.Questions.CategoryTree(ctx, nil); return err }, "GET", "/categories/tree"},
		{"categories get", func(a *API) error { _, err := a.Questions.Category(ctx, 9); return err }, "GET", "/categories/9"},
		{"categories create", func(a *API) error { _, err := a.Questions.CreateCategory(ctx, CategoryRequest{}); return err }, "POST", "/categories"},
		{"categories update", func(a *API) error { _, err := a.Questions.UpdateCategory(ctx, 9, CategoryRequest{}); return err }, "PUT", "/categories/9"},
		{"categories delete", func(a *API) error { return a.Questions.DeleteCategory(ctx, 9) }, "DELETE", "/categories/9"},
		{"categories move", func(a *API) error { _, err := a.Questions.MoveCategory(ctx, 9, MoveCategoryRequest{}); return err }, "POST", "/categories/9/move"},
		{"categories children", func(a *API) error { _, err := a.Questions.CategoryChildren(ctx, 9); return err }, "GET", "/categories/9/children"},
		{"tags list", func(a *API) error { _, err := a.Questions.Tags(ctx, nil); return err }, "GET", "/question-tags/"},
		{"tags create", func(a *API) error { _, err := a.Questions.CreateTag(ctx, TagRequest{}); return err }, "POST", "/question-tags/"},
		{"tags delete", func(a *API) error { return a.Questions.DeleteTag(ctx, 3) }, "DELETE", "/question-tags/3"},

		{"answers submit", func(a *API) error { _, err := a.Answers.Submit(ctx, 42, AnswerSubmission{}); return err }, "POST", "/surveys/42/answers/"},
		{"answers list", func(a *API) error { _, err := a.Answers.ListForSurvey(ctx, 42, nil); return err }, "GET", "/surveys/42/answers/"},
		{"answers get", func(a *API) error { _, err := a.Answers.Get(ctx, 8); return err }, "GET", "/answers/8"},

		{"organizations list", func(a *API) error { _, err := a.Organizations.List(ctx, nil); return err }, "GET", "/organizations/"},
		{"organizations public", func(a *API) error { _, err := a.Organizations.ListPublic(ctx, nil); return err }, "GET", "/organizations/public/"},
		{"organizations get", func(a *API) error { _, err := a.Organizations.Get(ctx, 1); return err }, "GET", "/organizations/1"},
		{"organizations create", func(a *API) error { _, err := a.Organizations.Create(ctx, OrganizationRequest{}); return err }, "POST", "/organizations/"},
		{"organizations update", func(a *API) error { _, err := a.Organizations.Update(ctx, 1, OrganizationRequest{}); return err }, "PUT", "/organizations/1"},
		{"organizations delete", func(a *API) error { return a.Organizations.Delete(ctx, 1) }, "DELETE", "/organizations/1"},
		{"members list", func(a *API) error { _, err := a.Organizations.Members(ctx, 1, nil); return err }, "GET", "/organizations/1/members"},
		{"members get", func(a *API) error { _, err := a.Organizations.Member(ctx, 1, 2); return err }, "GET", "/organizations/1/members/2"},
		{"members add", func(a *API) error { _, err := a.Organizations.AddMember(ctx, 1, MemberRequest{}); return err }, "POST", "/organizations/1/members"},
		{"members update", func(a *API) error { _, err := a.Organizations.UpdateMember(ctx, 1, 2, MemberRequest{}); return err }, "PUT", "/organizations/1/members/2"},
		{"members remove", func(a *API) error { return a.Organizations.RemoveMember(ctx, 1, 2) }, "DELETE", "/organizations/1/members/2"},
		{"departments list", func(a *API) error { _, err := a.Organizations.Departments(ctx, 1, nil); return err }, "GET", "/organizations/1/departments"},
		{"departments tree", func(a *API) error { _, err := a.Organizations.DepartmentTree(ctx, 1); return err }, "GET", "/organizations/1/departments/tree"},
		{"departments public", func(a *API) error { _, err := a.Organizations.PublicDepartments(ctx, 1, nil); return err }, "GET", "/organizations/1/departments/public"},
		{"departments get", func(a *API) error { _, err := a.Organizations.Department(ctx, 1, 4); return err }, "GET", "/organizations/1/departments/4"},
		{"departments create", func(a *API) error { _, err := a.Organizations.CreateDepartment(ctx, 1, DepartmentRequest{}); return err }, "POST", "/organizations/1/departments"},
		{"departments update", func(a *API) error { _, err := a.Organizations.UpdateDepartment(ctx, 1, 4, DepartmentRequest{}); return err }, "PUT", "/organizations/1/departments/4"},
		{"departments delete", func(a *API) error { return a.Organizations.DeleteDepartment(ctx, 1, 4) }, "DELETE", "/organizations/1/departments/4"},
		{"participants list", func(a *API) error { _, err := a.Organizations.Participants(ctx, 1, nil); return err }, "GET", "/organizations/1/participants"},
		{"participants create", func(a *API) error { _, err := a.Organizations.CreateParticipant(ctx, 1, ParticipantRequest{}); return err }, "POST", "/organizations/1/participants"},
		{"participants update", func(a *API) error { _, err := a.Organizations.UpdateParticipant(ctx, 1, 6, ParticipantRequest{}); return err }, "PUT", "/organizations/1/participants/6"},
		{"participants delete", func(a *API) error { return a.Organizations.DeleteParticipant(ctx, 1, 6) }, "DELETE", "/organizations/1/participants/6"},

		{"llm generate questions", func(a *API) error { _, err := a.LLM.GenerateQuestions(ctx, GenerateQuestionsRequest{Topic: "x"}); return err }, "POST", "/llm/generate_questions"},
		{"llm summarize answers", func(a *API) error { _, err := a.LLM.SummarizeAnswers(ctx, SummarizeAnswersRequest{}); return err }, "POST", "/llm/summarize_answers"},
		{"llm survey summary", func(a *API) error { _, err := a.LLM.GenerateSurveySummary(ctx, nil); return err }, "POST", "/llm/generate_survey_summary"},
		{"llm question insights", func(a *API) error { _, err := a.LLM.GenerateQuestionInsights(ctx, nil); return err }, "POST", "/llm/generate_question_insights"},

		{"analytics overview", func(a *API) error { _, err := a.Analytics.Overview(ctx, 1); return err }, "GET", "/organizations/1/analytics/overview"},
		{"analytics trends", func(a *API) error { _, err := a.Analytics.Trends(ctx, 1, nil); return err }, "GET", "/organizations/1/analytics/trends"},
		{"analytics participants", func(a *API) error { _, err := a.Analytics.Participants(ctx, 1, nil); return err }, "GET", "/organizations/1/analytics/participants"},
		{"analytics comparison", func(a *API) error { _, err := a.Analytics.Comparison(ctx, 1, nil); return err }, "GET", "/organizations/1/analytics/comparison"},
		{"analytics survey comparison", func(a *API) error { _, err := a.Analytics.SurveyComparison(ctx, 1, []int{2, 3}); return err }, "POST", "/organizations/1/analytics/survey-comparison"},
		{"analytics cross analysis", func(a *API) error { _, err := a.Analytics.CrossAnalysis(ctx, 1, nil); return err }, "GET", "/organizations/1/analytics/cross-analysis"},
		{"analytics tags", func(a *API) error { _, err := a.Analytics.Tags(ctx, 1, nil); return err }, "GET", "/organizations/1/analytics/tags"},
		{"analytics tag summary", func(a *API) error { _, err := a.Analytics.TagSummary(ctx, 1, nil); return err }, "GET", "/organizations/1/analytics/tags/summary"},
		{"analytics global comparison", func(a *API) error { _, err := a.Analytics.GlobalEnterpriseComparison(ctx, "Staff"); return err }, "GET", "/analytics/global-enterprise-comparison"},
		{"analytics survey", func(a *API) error { _, err := a.Analytics.Survey(ctx, 1, 42, nil); return err }, "GET", "/organizations/1/surveys/42/analytics"},
		{"analytics survey trend", func(a *API) error { _, err := a.Analytics.SurveyTrend(ctx, 1, 42, nil); return err }, "GET", "/organizations/1/surveys/42/analytics/trend"},
		{"analytics survey tags", func(a *API) error { _, err := a.Analytics.SurveyTags(ctx, 1, 42); return err }, "GET", "/organizations/1/surveys/42/analytics/tags"},
		{"analytics survey tag", func(a *API) error { _, err := a.Analytics.SurveyTag(ctx, 1, 42, 3); return err }, "GET", "/organizations/1/surveys/42/analytics/tag/3"},
		{"analytics survey category", func(a *API) error { _, err := a.Analytics.SurveyCategory(ctx, 1, 42, 9); return err }, "GET", "/organizations/1/surveys/42/analytics/category/9"},
		{"analytics department comparison", func(a *API) error { _, err := a.Analytics.DepartmentComparison(ctx, 1, 42); return err }, "GET", "/organizations/1/surveys/42/analytics/department-comparison"},
		{"analytics position comparison", func(a *API) error { _, err := a.Analytics.PositionComparison(ctx, 1, 42); return err }, "GET", "/organizations/1/surveys/42/analytics/position-comparison"},
		{"analytics detailed data", func(a *API) error { _, err := a.Analytics.DetailedData(ctx, 1, 42, nil); return err }, "GET", "/organizations/1/surveys/42/analytics/detailed-data"},
		{"analytics realtime", func(a *API) error { _, err := a.Analytics.Realtime(ctx, 1, 42); return err }, "GET", "/organizations/1/surveys/42/analytics/realtime"},
		{"analytics correlation", func(a *API) error { _, err := a.Analytics.Correlation(ctx, 1, 42, []int{1, 2}); return err }, "POST", "/organizations/1/surveys/42/analytics/correlation"},
		{"analytics clustering", func(a *API) error { _, err := a.Analytics.Clustering(ctx, 1, 42, nil); return err }, "POST", "/organizations/1/surveys/42/analytics/clustering"},
		{"analytics prediction", func(a *API) error { _, err := a.Analytics.Prediction(ctx, 1, 42, nil); return err }, "POST", "/organizations/1/surveys/42/analytics/prediction"},
		{"analytics ai summary", func(a *API) error { _, err := a.Analytics.AISummary(ctx, 1, 42); return err }, "GET", "/organizations/1/surveys/42/analytics/ai-summary"},
		{"analytics enterprise comparison ai", func(a *API) error { _, err := a.Analytics.EnterpriseComparisonAI(ctx, 1, 42, nil); return err }, "POST", "/organizations/1/surveys/42/analytics/enterprise-comparison-ai"},
		{"analytics question", func(a *API) error { _, err := a.Analytics.Question(ctx, 1, 42, 5); return err }, "GET", "/organizations/1/surveys/42/questions/5/analytics"},
		{"analytics question trend", func(a *API) error { _, err := a.Analytics.QuestionTrend(ctx, 1, 42, 5); return err }, "GET", "/organizations/1/surveys/42/questions/5/analytics/trend"},
		{"analytics question realtime", func(a *API) error { _, err := a.Analytics.QuestionRealtime(ctx, 1, 42, 5); return err }, "GET", "/organizations/1/surveys/42/questions/5/analytics/realtime"},
		{"analytics question ai insights", func(a *API) error { _, err := a.Analytics.QuestionAIInsights(ctx, 1, 42, 5); return err }, "GET", "/organizations/1/surveys/42/questions/5/ai-insights"},
		{"analysis stats", func(a *API) error { _, err := a.Analytics.SurveyStats(ctx, 42, ""); return err }, "GET", "/analysis/survey/42/stats"},
		{"analysis ai summary", func(a *API) error { _, err := a.Analytics.SurveyAISummary(ctx, 42); return err }, "GET", "/analysis/survey/42/ai-summary"},
		{"analysis question scores", func(a *API) error { _, err := a.Analytics.QuestionScores(ctx, 42, nil); return err }, "GET", "/analysis/survey/42/questions/scores"},
		{"analysis line", func(a *API) error { _, err := a.Analytics.LineScores(ctx, 42, nil); return err }, "GET", "/analysis/survey/42/line"},
		{"analysis pie", func(a *API) error { _, err := a.Analytics.PieDistribution(ctx, 42, nil); return err }, "GET", "/analysis/survey/42/pie"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRequester{}
			if err := tt.do(New(fake)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(fake.calls) != 1 {
				t.Fatalf("got %d requests, want 1", len(fake.calls))
			}
			got := fake.last(t)
			if got.method != tt.wantMethod || got.path != tt.wantPath {
				t.Errorf("got %s %s, want %s %s", got.method, got.path, tt.wantMethod, tt.wantPath)
			}
		})
	}
}

func TestErrorsArePassedThrough(t *testing.T) {
	want := &client.ClientError{StatusCode: 404, Category: client.CategoryNotFound, UserMessage: "Resource not found: Survey not found"}
	fake := &fakeRequester{err: want}

	_, err := New(fake).Surveys.Get(context.Background(), 99)

	var ce *client.ClientError
	if !errors.As(err, &ce) || ce != want {
		t.Fatalf("expected the client error to be returned unchanged, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	t.Run("stores the credential", func(t *testing.T) {
		fake := &fakeRequester{response: `{"access_token": "abc.def.ghi", "token_type": "bearer"}`}

		token, err := New(fake).Users.Login(context.Background(), "admin", "secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := fake.last(t)
		if got.method != http.MethodPost || got.path != "/users/login/access-token" {
			t.Errorf("got %s %s", got.method, got.path)
		}
		if got.opts.Form.Get("username") != "admin" || got.opts.Form.Get("password") != "secret" {
			t.Errorf("login should send the credentials as a form, got %v", got.opts.Form)
		}
		if got.opts.Body != nil {
			t.Error("login should not send a json body")
		}
		if token.AccessToken != "abc.def.ghi" || fake.saved != "abc.def.ghi" {
			t.Errorf("credential not saved: token %+v saved %q", token, fake.saved)
		}
	})

	t.Run("failed login stores nothing", func(t *testing.T) {
		fake := &fakeRequester{err: &client.ClientError{StatusCode: 400, Category: client.CategoryClientInput}}

		if _, err := New(fake).Users.Login(context.Background(), "admin", "wrong"); err == nil {
			t.Fatal("expected an error")
		}
		if fake.saved != "" {
			t.Error("credential should not be saved")
		}
	})

	t.Run("response without token", func(t *testing.T) {
		fake := &fakeRequester{response: `{"token_type": "bearer"}`}

		if _, err := New(fake).Users.Login(context.Background(), "admin", "secret"); err == nil {
			t.Fatal("expected an error")
		}
		if fake.saved != "" {
			t.Error("credential should not be saved")
		}
	})
}

func TestLogout(t *testing.T) {
	fake := &fakeRequester{}
	if err := New(fake).Users.Logout(); err != nil {
		t.Fatal(err)
	}
	if !fake.cleared {
		t.Error("logout should clear the credential")
	}
	if len(fake.calls) != 0 {
		t.Error("logout should not call the api")
	}
}

func TestQueryParameters(t *testing.T) {
	tests := []struct {
		name string
		do   func(a *API) error
		want url.Values
	}{
		{
			"list params passed through",
			func(a *API) error {
				_, err := a.Surveys.List(context.Background(), Params{"skip": {"20"}, "limit": {"10"}})
				return err
			},
			url.Values{"skip": {"20"}, "limit": {"10"}},
		},
		{
			"enterprise comparison",
			func(a *API) error {
				_, err := a.Analytics.EnterpriseComparison(context.Background(), 1, 42, []int{2, 3, 5})
				return err
			},
			url.Values{"survey_id": {"42"}, "compare_organizations": {"2,3,5"}},
		},
		{
			"default stats dimension",
			func(a *API) error {
				_, err := a.Analytics.SurveyStats(context.Background(), 42, "")
				return err
			},
			url.Values{"dimension": {"department"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRequester{}
			if err := tt.do(New(fake)); err != nil {
				t.Fatal(err)
			}
			got := fake.last(t).opts.Query
			if got.Encode() != tt.want.Encode() {
				t.Errorf("got query %q, want %q", got.Encode(), tt.want.Encode())
			}
		})
	}
}

func TestReorderBody(t *testing.T) {
	fake := &fakeRequester{}
	if err := New(fake).Questions.Reorder(context.Background(), 42, []int{3, 1, 2}); err != nil {
		t.Fatal(err)
	}

	b, err := json.Marshal(fake.last(t).opts.Body)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"question_ids":[3,1,2]}` {
		t.Errorf("got body %s", b)
	}
}

func TestExportRequestsBlob(t *testing.T) {
	fake := &fakeRequester{}
	if _, err := New(fake).Analytics.Export(context.Background(), 1, 42, Params{"format": {"xlsx"}}); err != nil {
		t.Fatal(err)
	}

	got := fake.last(t)
	if got.path != "/organizations/1/surveys/42/analytics/export" {
		t.Errorf("got path %s", got.path)
	}
	if got.opts.ResponseKind != client.ResponseBlob {
		t.Error("export should ask for a blob response")
	}
}

// TestSurveyGetOverHTTP checks the path the transport receives when the client is configured with the /api/v1 base
func TestSurveyGetOverHTTP(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 42, "title": "Engagement 2026", "created_at": "2026-01-05T09:00:00Z"}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL+"/api/v1", time.Second, client.WithNotifier(client.NewRecorder()))

	survey, err := New(c).Surveys.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/v1/surveys/42" {
		t.Errorf("got path %q, want /api/v1/surveys/42", gotPath)
	}
	if survey.ID != 42 || survey.Title != "Engagement 2026" {
		t.Errorf("unexpected survey %+v", survey)
	}
}
