package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/survey-system/surveyconsole/internal/client"
	"github.com/survey-system/surveyconsole/internal/config"
	"github.com/survey-system/surveyconsole/internal/logger"
	"github.com/survey-system/surveyconsole/internal/ui/auth"
	"github.com/survey-system/surveyconsole/internal/ui/handlers"
	"github.com/survey-system/surveyconsole/internal/ui/middleware"
	"github.com/survey-system/surveyconsole/internal/ui/responses"
	"github.com/survey-system/surveyconsole/internal/ui/static"
	"github.com/survey-system/surveyconsole/internal/ui/templates"
	"github.com/survey-system/surveyconsole/internal/version"
)

const (
	// ServerShutdownTimeout is the timeout for graceful server shutdown
	ServerShutdownTimeout = 10 * time.Second

	// handlerTimeoutMargin leaves time to render the response after a survey API call used its whole timeout
	handlerTimeoutMargin = 5 * time.Second
)

// Route describes a console route. RequiresAuth routes are wrapped in auth.RequireAuth; Title is the page title.
type Route struct {
	Method       string
	Pattern      string
	Title        string
	RequiresAuth bool
	RateLimited  bool
	Handler      http.HandlerFunc
}

type Server struct {
	router   *chi.Mux
	config   *config.Config
	logger   *slog.Logger
	sessions *auth.SessionManager
	handlers *handlers.HandlerService
}

// NewServer creates the console server. base is the survey API client shared by all browser sessions.
func NewServer(cfg *config.Config, logger *slog.Logger, base *client.Client) (*Server, error) {
	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   logger,
		sessions: auth.NewSessionManager(base, cfg.Environment),
		handlers: handlers.NewHandlerService(cfg.PublicURL(), cfg.Environment),
	}

	s.setupMiddleware()
	if err := s.registerRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

// Routes is the console route table
func (s *Server) Routes() []Route {
	h := s.handlers
	return []Route{
		// public
		{Method: http.MethodGet, Pattern: "/", Handler: h.HandleHome},
		{Method: http.MethodGet, Pattern: auth.LoginPath, Title: "Login", Handler: h.HandleLogin},
		{Method: http.MethodPost, Pattern: auth.LoginPath, Title: "Login", RateLimited: true, Handler: h.HandleLoginPost},
		{Method: http.MethodGet, Pattern: "/survey/fill/{id}", Title: "Survey", Handler: h.HandleSurveyFill},
		{Method: http.MethodPost, Pattern: "/survey/fill/{id}", Title: "Survey", RateLimited: true, Handler: h.HandleSurveyFillPost},
		{Method: http.MethodGet, Pattern: "/survey/resume", Title: "Continue survey", Handler: h.HandleSurveyResume},

		// protected pages
		{Method: http.MethodPost, Pattern: auth.LogoutPath, RequiresAuth: true, Handler: h.HandleLogout},
		{Method: http.MethodGet, Pattern: auth.DashboardPath, Title: "Dashboard", RequiresAuth: true, Handler: h.HandleDashboard},

		// ui-api (json endpoints used by the console pages)
		{Method: http.MethodGet, Pattern: "/ui-api/me", RequiresAuth: true, RateLimited: true, Handler: h.HandleMe},
		{Method: http.MethodGet, Pattern: "/ui-api/surveys", RequiresAuth: true, RateLimited: true, Handler: h.HandleListSurveys},
		{Method: http.MethodPost, Pattern: "/ui-api/surveys", RequiresAuth: true, RateLimited: true, Handler: h.HandleCreateSurvey},
		{Method: http.MethodGet, Pattern: "/ui-api/surveys/{id}", RequiresAuth: true, RateLimited: true, Handler: h.HandleGetSurvey},
		{Method: http.MethodPost, Pattern: "/ui-api/surveys/{id}/publish", RequiresAuth: true, RateLimited: true, Handler: h.HandlePublishSurvey},
		{Method: http.MethodPost, Pattern: "/ui-api/surveys/{id}/unpublish", RequiresAuth: true, RateLimited: true, Handler: h.HandleUnpublishSurvey},
		{Method: http.MethodGet, Pattern: "/ui-api/surveys/{id}/link", RequiresAuth: true, RateLimited: true, Handler: h.HandleSurveyLink},
		{Method: http.MethodPost, Pattern: "/ui-api/llm/generate-questions", RequiresAuth: true, RateLimited: true, Handler: h.HandleGenerateQuestions},
		{Method: http.MethodGet, Pattern: "/ui-api/organizations/{orgID}/surveys/{id}/analytics", RequiresAuth: true, RateLimited: true, Handler: h.HandleSurveyAnalytics},
		{Method: http.MethodGet, Pattern: "/ui-api/organizations/{orgID}/surveys/{id}/export", RequiresAuth: true, RateLimited: true, Handler: h.HandleExport},
	}
}

func (s *Server) registerRoutes() error {
	cors, err := middleware.NewCORS(s.config.AllowedOriginList())
	if err != nil {
		return err
	}

	s.router.Get("/health/live", s.handleLiveness)
	s.router.Get("/version", s.handleVersion)

	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static.Files)))

	if err := s.registerDevProxy(); err != nil {
		return err
	}

	// one limiter shared by the rate limited routes
	rateLimit := middleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst)

	s.router.Group(func(r chi.Router) {
		r.Use(middleware.CORS(cors))
		r.Use(s.sessions.Sessions)

		for _, route := range s.Routes() {
			var h http.Handler = route.Handler
			if route.RequiresAuth {
				h = auth.RequireAuth(h)
			}
			if route.RateLimited {
				h = rateLimit(h)
			}
			r.Method(route.Method, route.Pattern, titled(route.Title, h))
		}
	})

	return nil
}

// titled sets the page title used by templates.Layout
func titled(title string, next http.Handler) http.Handler {
	if title == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(templates.ContextWithPageTitle(r.Context(), title)))
	})
}

// registerDevProxy forwards the survey API prefix to BACKEND_URL in dev, so the browser and the console share an origin.
func (s *Server) registerDevProxy() error {
	prefix := s.config.APIProxyPrefix()
	if s.config.Environment != "dev" || prefix == "" {
		return nil
	}

	backend, err := url.Parse(s.config.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid BACKEND_URL %q: %w", s.config.BackendURL, err)
	}

	proxy := httputil.NewSingleHostReverseProxy(backend)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.ContextRequestLogger(r.Context()).Warn("survey api proxy failed",
			slog.String("component", "ui.devProxy"),
			slog.String("error", err.Error()),
		)
		w.WriteHeader(http.StatusBadGateway)
	}

	s.router.Handle(prefix+"/*", proxy)
	s.logger.Info("proxying survey api in dev",
		slog.String("prefix", prefix),
		slog.String("backend", backend.String()),
	)
	return nil
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	responses.RespondWithJSON(w, http.StatusOK, version.Get())
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.SecurityHeaders(s.config.Environment))
	s.router.Use(middleware.RequestSizeLimit(s.config.MaxRequestSize))
	s.router.Use(chimiddleware.Timeout(s.config.RequestTimeout + handlerTimeoutMargin))
}

// Handler returns the console's http handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the console until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("survey console listening",
			slog.String("address", addr),
			slog.String("environment", s.config.Environment),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		s.logger.Info("Shutting down survey console...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ServerShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
			return err
		}
	}

	return nil
}
