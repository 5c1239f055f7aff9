// Package cli implements surveyctl, the command line client for the survey API.
//
// Commands annotated with requiresAuth are guarded: the stored credential is checked before the command runs and a
// missing or expired credential stops it with a hint to log in. Everything else behaves like the web console, since
// both go through the same client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/survey-system/surveyconsole/internal/api"
	"github.com/survey-system/surveyconsole/internal/client"
	"github.com/survey-system/surveyconsole/internal/config"
	"github.com/survey-system/surveyconsole/internal/logger"
	"github.com/survey-system/surveyconsole/internal/version"
)

const (
	BinaryName = "surveyctl"

	// annotationRequiresAuth marks commands that need a stored credential
	annotationRequiresAuth = "requiresAuth"
)

// ErrNotLoggedIn stops a guarded command when there is no usable credential
var ErrNotLoggedIn = errors.New("not logged in")

// App holds what the commands share
type App struct {
	Client    *client.Client
	API       *api.API
	PublicURL string

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// NewApp creates the cli for the configured survey API. The credential is kept in cfg.CredentialsPath().
func NewApp(cfg *config.Config, log *slog.Logger) (*App, error) {
	apiBaseURL, err := cfg.ResolvedAPIBaseURL()
	if err != nil {
		return nil, err
	}

	credentialsPath, err := cfg.CredentialsPath()
	if err != nil {
		return nil, err
	}

	app := &App{
		PublicURL: cfg.PublicURL(),
		In:        os.Stdin,
		Out:       os.Stdout,
		ErrOut:    os.Stderr,
	}
	app.connect(client.New(apiBaseURL, cfg.RequestTimeout,
		client.WithCredentialStore(client.NewFileStore(credentialsPath)),
		client.WithLogger(log),
		client.WithUserAgent(version.UserAgent(BinaryName)),
	))
	return app, nil
}

// connect binds c to the app: notifications and login hints are written to ErrOut with the rest of the
// diagnostic output.
func (app *App) connect(c *client.Client) {
	c = c.WithSession(nil, NewTerminalNotifier(app.ErrOut), NewLoginHint(app.ErrOut, BinaryName))
	app.Client = c
	app.API = api.New(c)
}

// NewRootCommand builds the surveyctl command tree
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           BinaryName,
		Short:         "Command line client for the survey system",
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.guard(cmd, args)
		},
	}

	root.SetIn(app.In)
	root.SetOut(app.Out)
	root.SetErr(app.ErrOut)

	root.AddCommand(
		app.loginCommand(),
		app.logoutCommand(),
		app.whoamiCommand(),
		app.surveysCommand(),
		app.analyticsCommand(),
		app.exportCommand(),
		app.llmCommand(),
	)
	return root
}

// requiresAuth marks cmd as guarded
func requiresAuth(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationRequiresAuth] = "true"
	return cmd
}

func isGuarded(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationRequiresAuth] == "true" {
			return true
		}
	}
	return false
}

// guard runs before every command. For guarded commands the command line is recorded so a call that ends the
// session can tell the user what to run again. Unguarded commands (login) may carry a password in their
// arguments and are never echoed.
func (app *App) guard(cmd *cobra.Command, args []string) error {
	ctx := logger.ContextWithRequestLogger(cmd.Context(), slog.Default().With(slog.String("command", cmd.CommandPath())))

	if !isGuarded(cmd) {
		cmd.SetContext(ctx)
		return nil
	}

	commandLine := strings.Join(append([]string{cmd.CommandPath()}, args...), " ")
	ctx = client.ContextWithReturnTo(ctx, commandLine)
	cmd.SetContext(ctx)

	token, err := app.Client.Credential()
	if err != nil {
		return fmt.Errorf("reading stored credential: %w", err)
	}
	if token == "" {
		fmt.Fprintf(app.ErrOut, "You are not logged in. Log in with `%s login` and then run `%s` again.\n", BinaryName, commandLine)
		return ErrNotLoggedIn
	}

	if !app.Client.EnsureAuthenticated(ctx) {
		return ErrNotLoggedIn
	}
	return nil
}

// Execute runs the command line and returns the process exit code
func Execute(ctx context.Context, app *App, args []string) int {
	root := NewRootCommand(app)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		var ce *client.ClientError
		switch {
		case errors.Is(err, ErrNotLoggedIn):
			// the hint has been printed
		case errors.As(err, &ce):
			// the client has printed the notification
		default:
			fmt.Fprintf(app.ErrOut, "error: %v\n", err)
		}
		return 1
	}
	return 0
}
