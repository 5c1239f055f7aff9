// Package logger sets up slog for the console and the cli.
//
// A request (a console http request or a cli command) carries two things in its context:
//   - a request logger, tagged with the request id and component, used for log lines written while the
//     request is in progress. The survey API client picks it up so its failure logs can be tied to the request.
//   - a shared attribute slice that handlers append to (ContextWithLogAttrs). The attributes end up on the
//     single "request completed" line written by RequestLogging.
package logger

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"
)

type contextKey struct {
	name string
}

var (
	logAttrsKey      = contextKey{"log_attrs"}
	requestLoggerKey = contextKey{"request_logger"}
)

// ContextWithLogAttrs adds attributes to the final request log, for example the survey a handler worked on.
// Outside RequestLogging there is no final log line and the attributes are dropped.
func ContextWithLogAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if attrPtr, ok := ctx.Value(logAttrsKey).(*[]slog.Attr); ok {
		*attrPtr = append(*attrPtr, attrs...)
	}
	return ctx
}

func ContextLogAttrs(ctx context.Context) []slog.Attr {
	if attrPtr, ok := ctx.Value(logAttrsKey).(*[]slog.Attr); ok {
		return *attrPtr
	}
	return nil
}

// ContextWithRequestLogger stores the request logger. RequestLogging does this for console requests,
// the cli does it per command.
func ContextWithRequestLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, requestLoggerKey, logger)
}

// RequestLoggerFrom returns the request logger, if ctx has one
func RequestLoggerFrom(ctx context.Context) (*slog.Logger, bool) {
	logger, ok := ctx.Value(requestLoggerKey).(*slog.Logger)
	return logger, ok && logger != nil
}

// ContextRequestLogger returns the request logger, or the default logger outside a request
func ContextRequestLogger(ctx context.Context) *slog.Logger {
	if logger, ok := RequestLoggerFrom(ctx); ok {
		return logger
	}
	return slog.Default()
}

// ParseLogLevel converts LOG_LEVEL to a slog.Level. Unknown values give debug.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// InitLogger returns colourised text on stderr for dev, JSON on stdout otherwise
func InitLogger(logLevel slog.Level, environment string) *slog.Logger {
	if environment == "dev" {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.Kitchen,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// component names the part of the console a request is for
func component(path string) string {
	switch {
	case strings.HasPrefix(path, "/ui-api/"):
		return "ui-api"
	case strings.HasPrefix(path, "/api/"):
		return "proxy"
	default:
		return "page"
	}
}

func quiet(path string) bool {
	return strings.HasPrefix(path, "/health/") || strings.HasPrefix(path, "/static/")
}

// RequestLogging writes one line per console request. 5xx responses are logged as errors and 4xx as warnings.
// Health checks and static files are not logged. Must run after chi's RequestID middleware.
func RequestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if quiet(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			requestID := middleware.GetReqID(r.Context())
			comp := component(r.URL.Path)

			attrs := &[]slog.Attr{}
			ctx := context.WithValue(r.Context(), logAttrsKey, attrs)
			ctx = ContextWithRequestLogger(ctx, logger.With(
				slog.String("request_id", requestID),
				slog.String("component", comp),
			))

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			final := append([]slog.Attr{
				slog.Int("status", status),
				slog.String("request_id", requestID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("component", comp),
			}, *attrs...)
			final = append(final,
				slog.Duration("duration", time.Since(start)),
				slog.Int("bytes", ww.BytesWritten()),
			)

			logger.LogAttrs(r.Context(), level, "request completed", final...)
		})
	}
}
