package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/survey-system/surveyconsole/internal/api"
)

// LoginPage renders the login form. redirect is carried through the form so the user returns to the page they asked for.
func LoginPage(errMsg, redirect string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="login"><h1>Log in</h1><form method="post" action="/login" hx-post="/login" hx-target="#login-error"><input type="hidden" name="redirect" value="%s"><label for="username">Username</label><input id="username" name="username" type="text" autocomplete="username" required><label for="password">Password</label><input id="password" name="password" type="password" autocomplete="current-password" required><button type="submit">Log in</button></form><div id="login-error">`,
			templ.EscapeString(redirect)); err != nil {
			return err
		}
		if errMsg != "" {
			if err := ErrorMessage(errMsg).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div></section>`)
		return err
	})
}

// DashboardPage lists the surveys visible to the logged in user
func DashboardPage(user *api.User, surveys []api.Survey) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		name := ""
		if user != nil {
			name = user.Username
		}
		if _, err := fmt.Fprintf(w, `<section class="dashboard"><h1>Welcome %s</h1><h2>Surveys</h2>`, templ.EscapeString(name)); err != nil {
			return err
		}

		if len(surveys) == 0 {
			_, err := io.WriteString(w, `<p class="empty">No surveys yet.</p></section>`)
			return err
		}

		if _, err := io.WriteString(w, `<table class="surveys"><thead><tr><th>Title</th><th>Status</th><th>Created</th><th></th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, s := range surveys {
			if _, err := fmt.Fprintf(w, `<tr id="survey-%d"><td>%s</td><td>%s</td><td>%s</td><td><a href="/survey/fill/%d" target="_blank">Open</a></td></tr>`,
				s.ID,
				templ.EscapeString(s.Title),
				templ.EscapeString(s.Status),
				s.CreatedAt.Format("2006-01-02"),
				s.ID); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table></section>`)
		return err
	})
}

// SurveyFillPage is the respondent's view of a published survey
func SurveyFillPage(survey *api.SurveyDetail) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="survey-fill"><h1>%s</h1><p>%s</p><form method="post" action="/survey/fill/%d" hx-post="/survey/fill/%d" hx-target="#survey-result">`,
			templ.EscapeString(survey.Title),
			templ.EscapeString(survey.Description),
			survey.ID, survey.ID); err != nil {
			return err
		}

		for _, q := range survey.Questions {
			if err := questionField(q).Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `<button type="submit">Submit</button></form><div id="survey-result"></div></section>`)
		return err
	})
}

// QuestionFieldName is the form field holding the answer to question id
func QuestionFieldName(id int) string {
	return "q_" + strconv.Itoa(id)
}

func questionField(q api.Question) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		field := QuestionFieldName(q.ID)
		required := ""
		if q.IsRequired {
			required = " required"
		}

		if _, err := fmt.Fprintf(w, `<fieldset class="question" data-type="%s"><legend>%s</legend>`,
			templ.EscapeString(q.Type), templ.EscapeString(q.Text)); err != nil {
			return err
		}

		var err error
		switch q.Type {
		case api.QuestionSingleChoice, api.QuestionMultiChoice:
			inputType := "radio"
			if q.Type == api.QuestionMultiChoice {
				inputType = "checkbox"
				// browsers cannot require "at least one" checkbox
				required = ""
			}
			for i, raw := range q.Options {
				text := OptionText(raw)
				if _, err = fmt.Fprintf(w, `<label><input type="%s" name="%s" value="%s" id="%s_%d"%s>%s</label>`,
					inputType, field, templ.EscapeString(text), field, i, required, templ.EscapeString(text)); err != nil {
					return err
				}
			}
		case api.QuestionNumberInput:
			_, err = fmt.Fprintf(w, `<input type="number" name="%s"%s>`, field, required)
		default:
			_, err = fmt.Fprintf(w, `<textarea name="%s"%s></textarea>`, field, required)
		}
		if err != nil {
			return err
		}

		_, err = io.WriteString(w, `</fieldset>`)
		return err
	})
}

// OptionText returns the display text of a question option, which is either a json string or an object with a text field
func OptionText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var opt api.QuestionOption
	if err := json.Unmarshal(raw, &opt); err == nil {
		return opt.Text
	}
	return string(raw)
}

// SurveySubmitted replaces the fill form once the answers are stored
func SurveySubmitted() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="success-message" role="status">Thank you, your answers have been submitted.</div>`)
		return err
	})
}

// SurveyResumePage asks the respondent for the survey link they were given
func SurveyResumePage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="survey-resume"><h1>Continue a survey</h1><form method="get" action="/survey/resume"><label for="link">Survey link</label><input id="link" name="link" type="url" required><button type="submit">Continue</button></form></section>`)
		return err
	})
}
