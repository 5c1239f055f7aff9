package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/survey-system/surveyconsole/internal/apperrors"
)

// Level is the severity of a user-facing notification
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

var levelNames = []string{"info", "success", "warning", "error"}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// MarshalText renders the level by name in json
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	for i, name := range levelNames {
		if name == string(text) {
			*l = Level(i)
			return nil
		}
	}
	return fmt.Errorf("unknown notification level %q", text)
}

// Notification is a message intended for the person using the console or cli (the equivalent of a toast)
type Notification struct {
	Level   Level               `json:"level"`
	Code    apperrors.ErrorCode `json:"code,omitempty"`
	Message string              `json:"message"`
}

// Notifier receives the user-facing notifications produced by the client
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) {
	f(ctx, n)
}

// LogNotifier writes notifications to a logger. Used when nothing displays them.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(ctx context.Context, n Notification) {
	level := slog.LevelInfo
	switch n.Level {
	case LevelWarning:
		level = slog.LevelWarn
	case LevelError:
		level = slog.LevelError
	}
	l.logger.LogAttrs(ctx, level, n.Message,
		slog.String("component", "client.Notify"),
		slog.String("code", string(n.Code)),
	)
}

// Recorder collects notifications so they can be rendered after the call returns (one per console request)
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

// Notifications returns a copy of the recorded notifications in the order they were received
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// ErrDuplicateNavigation is returned by a Navigator asked to go where it is already going. The client ignores it.
var ErrDuplicateNavigation = errors.New("navigation to the current location")

// Navigator performs the redirect to the login view when a session ends.
// returnTo is the destination the user was trying to reach, so they can be sent back after logging in (may be empty).
type Navigator interface {
	RedirectToLogin(ctx context.Context, returnTo string) error
}

type NavigatorFunc func(ctx context.Context, returnTo string) error

func (f NavigatorFunc) RedirectToLogin(ctx context.Context, returnTo string) error {
	return f(ctx, returnTo)
}

var noNavigation = NavigatorFunc(func(context.Context, string) error { return nil })

type contextKey struct {
	name string
}

var returnToKey = contextKey{"return-to"}

// ContextWithReturnTo records the destination passed to the Navigator if a call made with ctx ends the session
func ContextWithReturnTo(ctx context.Context, returnTo string) context.Context {
	return context.WithValue(ctx, returnToKey, returnTo)
}

func ContextReturnTo(ctx context.Context) string {
	returnTo, _ := ctx.Value(returnToKey).(string)
	return returnTo
}
