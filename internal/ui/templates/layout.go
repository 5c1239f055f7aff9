// Package templates holds the console's html components.
//
// The components are written directly against templ.Component so the console builds without the templ code generator.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/survey-system/surveyconsole/internal/client"
	"github.com/survey-system/surveyconsole/internal/config"
)

const htmxScript = `<script src="https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"></script>`

// PageTitle is the document title of a console page, e.g. "Dashboard - Survey System"
func PageTitle(title string) string {
	if title == "" {
		return config.AppName
	}
	return title + " - " + config.AppName
}

type pageTitleKey struct{}

// ContextWithPageTitle sets the title used by Layout. The router sets it from the route table.
func ContextWithPageTitle(ctx context.Context, title string) context.Context {
	return context.WithValue(ctx, pageTitleKey{}, title)
}

func ContextPageTitle(ctx context.Context) string {
	title, _ := ctx.Value(pageTitleKey{}).(string)
	return title
}

// Layout is the page shell. The title comes from the request context.
func Layout(authenticated bool, notifications []client.Notification, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title>%s<link rel="stylesheet" href="/static/css/app.css"></head><body>`,
			templ.EscapeString(PageTitle(ContextPageTitle(ctx))), htmxScript); err != nil {
			return err
		}

		if err := navigation(authenticated).Render(ctx, w); err != nil {
			return err
		}
		if err := Notifications(notifications).Render(ctx, w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<main class="container">`); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func navigation(authenticated bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !authenticated {
			_, err := fmt.Fprintf(w, `<nav class="navbar"><span class="brand">%s</span></nav>`, templ.EscapeString(config.AppName))
			return err
		}
		_, err := fmt.Fprintf(w, `<nav class="navbar"><a class="brand" href="/dashboard">%s</a><a href="/dashboard">Dashboard</a><form method="post" action="/logout" hx-post="/logout"><button type="submit">Logout</button></form></nav>`,
			templ.EscapeString(config.AppName))
		return err
	})
}

// Notifications renders the messages raised while handling the request (the console's toasts)
func Notifications(notifications []client.Notification) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="notifications" aria-live="polite">`); err != nil {
			return err
		}
		for _, n := range notifications {
			if _, err := fmt.Fprintf(w, `<div class="notification notification-%s" data-code="%s">%s</div>`,
				templ.EscapeString(n.Level.String()),
				templ.EscapeString(string(n.Code)),
				templ.EscapeString(n.Message)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// ErrorMessage is the inline error shown in htmx forms
func ErrorMessage(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="error-message" role="alert">%s</div>`, templ.EscapeString(message))
		return err
	})
}

// ErrorPage is shown when a page could not be produced
func ErrorPage(statusCode int, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="error-page"><h1>%d</h1><p>%s</p><a href="/dashboard">Back to the dashboard</a></section>`,
			statusCode, templ.EscapeString(message))
		return err
	})
}
