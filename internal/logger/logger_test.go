package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelDebug},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestRequestLogging(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		status        int
		wantLogged    bool
		wantLevel     string
		wantComponent string
	}{
		{"page", "/dashboard", http.StatusOK, true, "INFO", "page"},
		{"ui api client error", "/ui-api/surveys/9", http.StatusNotFound, true, "WARN", "ui-api"},
		{"proxy failure", "/api/v1/surveys/", http.StatusBadGateway, true, "ERROR", "proxy"},
		{"health checks are skipped", "/health/live", http.StatusOK, false, "", ""},
		{"static files are skipped", "/static/css/app.css", http.StatusOK, false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&buf, nil))

			handler := middleware.RequestID(RequestLogging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ContextWithLogAttrs(r.Context(), slog.Int("survey_id", 9))
				w.WriteHeader(tt.status)
			})))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			if !tt.wantLogged {
				if buf.Len() != 0 {
					t.Errorf("expected no log output, got %s", buf.String())
				}
				return
			}

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("could not parse log entry %q: %v", buf.String(), err)
			}
			if entry["level"] != tt.wantLevel {
				t.Errorf("expected level %s, got %v", tt.wantLevel, entry["level"])
			}
			if entry["component"] != tt.wantComponent {
				t.Errorf("expected component %s, got %v", tt.wantComponent, entry["component"])
			}
			if entry["survey_id"] != float64(9) {
				t.Errorf("expected the handler's survey_id attribute, got %v", entry["survey_id"])
			}
			if entry["request_id"] == "" || entry["request_id"] == nil {
				t.Error("expected a request_id")
			}
		})
	}
}

func TestContextRequestLoggerFallback(t *testing.T) {
	if ContextRequestLogger(context.Background()) != slog.Default() {
		t.Error("expected the default logger when none is stored")
	}

	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := ContextWithRequestLogger(context.Background(), log)
	if ContextRequestLogger(ctx) != log {
		t.Error("expected the stored logger")
	}
}

func TestRequestLoggerCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	var inFlight *slog.Logger
	handler := middleware.RequestID(RequestLogging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inFlight = ContextRequestLogger(r.Context())
	})))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ui-api/me", nil))

	buf.Reset()
	inFlight.Info("survey api call failed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("could not parse log entry %q: %v", buf.String(), err)
	}
	if entry["component"] != "ui-api" {
		t.Errorf("expected component ui-api, got %v", entry["component"])
	}
	if id, _ := entry["request_id"].(string); id == "" {
		t.Error("expected a request_id")
	}
}

func TestContextWithLogAttrsOutsideRequest(t *testing.T) {
	ctx := ContextWithLogAttrs(context.Background(), slog.Int("survey_id", 1))
	if attrs := ContextLogAttrs(ctx); attrs != nil {
		t.Errorf("expected attributes to be dropped outside a request, got %v", attrs)
	}
}
