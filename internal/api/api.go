// the api package maps each survey API operation to its http method and url template.
//
// The modules do no validation, retries or transformation: they build the path, pass the payload and
// query through and leave authentication, error classification and notifications to the client.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/survey-system/surveyconsole/internal/client"
)

// Requester sends calls to the survey API. Implemented by *client.Client.
type Requester interface {
	IssueRequest(ctx context.Context, method, path string, opts *client.RequestOptions, out any) error
	SaveCredential(token string) error
	ClearCredential() error
}

// API groups the feature modules
type API struct {
	Users         *Users
	Surveys       *Surveys
	Questions     *Questions
	Answers       *Answers
	Organizations *Organizations
	LLM           *LLM
	Analytics     *Analytics
}

func New(r Requester) *API {
	return &API{
		Users:         &Users{r: r},
		Surveys:       &Surveys{r: r},
		Questions:     &Questions{r: r},
		Answers:       &Answers{r: r},
		Organizations: &Organizations{r: r},
		LLM:           &LLM{r: r},
		Analytics:     &Analytics{r: r},
	}
}

// Params are the optional query parameters of list endpoints (skip, limit, filters...)
type Params = url.Values

func path(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func get(ctx context.Context, r Requester, p string, params Params, out any) error {
	return r.IssueRequest(ctx, http.MethodGet, p, &client.RequestOptions{Query: params}, out)
}

func post(ctx context.Context, r Requester, p string, body, out any) error {
	return r.IssueRequest(ctx, http.MethodPost, p, &client.RequestOptions{Body: body}, out)
}

func put(ctx context.Context, r Requester, p string, body, out any) error {
	return r.IssueRequest(ctx, http.MethodPut, p, &client.RequestOptions{Body: body}, out)
}

func del(ctx context.Context, r Requester, p string) error {
	return r.IssueRequest(ctx, http.MethodDelete, p, nil, nil)
}

// getJSON is used for pass-through endpoints whose payload shape is not interpreted
func getJSON(ctx context.Context, r Requester, p string, params Params) (json.RawMessage, error) {
	var out json.RawMessage
	if err := get(ctx, r, p, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func postJSON(ctx context.Context, r Requester, p string, body any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := post(ctx, r, p, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}
