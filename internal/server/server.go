package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/wiseaidev/nylas-go/internal/instrumentation"
	"github.com/wiseaidev/nylas-go/internal/logging"
	"github.com/wiseaidev/nylas-go/nylas"
)

const (
	// DefaultReadHeaderTimeout bounds how long reading request headers may take.
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultWriteTimeout bounds how long writing a response may take.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout bounds how long idle keep-alive connections are held.
	DefaultIdleTimeout = 60 * time.Second

	// maxExchangeBodySize limits the authorization code request body.
	maxExchangeBodySize = 4 << 10
)

// Server is the demo HTTP server exposing the hosted-auth flow and a
// few message endpoints over the Nylas client.
type Server struct {
	cfg     Config
	logger  *slog.Logger
	metrics *instrumentation.Metrics
	health  *HealthChecker

	httpServer *http.Server
	shutdown   atomic.Bool
}

// New creates a new demo server. The metrics recorder may be a zero-value
// *instrumentation.Metrics when instrumentation is disabled.
func New(cfg Config, logger *slog.Logger, metrics *instrumentation.Metrics) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
	}
	s.health = NewHealthChecker(s)
	return s
}

// Health returns the server's health checker.
func (s *Server) Health() *HealthChecker {
	return s.health
}

// IsShutdown returns whether the server is shutting down.
func (s *Server) IsShutdown() bool {
	return s.shutdown.Load()
}

// Router builds the chi router with all routes registered.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.metricsMiddleware)

	r.Route("/nylas", func(r chi.Router) {
		r.Get("/generate-auth-token", s.handleGenerateAuthToken)
		r.Post("/exchange-access-token", s.handleExchangeAccessToken)
		r.Get("/messages", s.handleMessages)
		r.Get("/recent-message", s.handleRecentMessage)
	})

	s.health.RegisterHealthEndpoints(r)

	return r
}

// Start starts the server in a blocking manner. Call Shutdown from
// another goroutine to stop it.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       DefaultIdleTimeout,
	}

	s.logger.Info("starting server", "addr", s.cfg.Addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdown.Store(true)
	s.health.SetReady(false)

	if s.httpServer != nil {
		s.logger.Info("shutting down server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// metricsMiddleware records request count and duration per route pattern.
// The route pattern keeps metric cardinality bounded regardless of path
// parameters.
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = "unmatched"
		}
		s.metrics.RecordHTTPRequest(r.Context(), r.Method, pattern, ww.Status(), time.Since(start))
	})
}

// sdkOptions translates the server configuration into client options.
func (s *Server) sdkOptions(extra ...nylas.Option) []nylas.Option {
	opts := make([]nylas.Option, 0, len(extra)+1)
	if s.cfg.APIURL != "" {
		opts = append(opts, nylas.WithBaseURL(s.cfg.APIURL))
	}
	return append(opts, extra...)
}

// authURLResponse is the response body for the auth URL endpoint.
type authURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// handleGenerateAuthToken builds the hosted-auth URL the user should be
// redirected to. A state parameter may be supplied by the caller; when
// absent a random one is generated.
func (s *Server) handleGenerateAuthToken(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRoute(s.logger, r.Method, "/nylas/generate-auth-token")

	client, err := nylas.New(r.Context(), s.cfg.ClientID, s.cfg.ClientSecret, s.sdkOptions()...)
	if err != nil {
		s.writeError(w, logger, err)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		state = uuid.NewString()
	}

	authURL, err := client.AuthenticationURL(nylas.AuthURLParams{
		RedirectURI: s.cfg.ClientURI,
		LoginHint:   s.cfg.LoginHint,
		State:       state,
		Scopes:      s.cfg.Scopes,
	})
	if err != nil {
		s.writeError(w, logger, err)
		return
	}

	logger.Info("generated auth URL", logging.Status(logging.StatusSuccess))
	s.writeJSON(w, http.StatusOK, authURLResponse{URL: authURL, State: state})
}

// tokenResponse is the response body for the code exchange endpoint.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// handleExchangeAccessToken exchanges an authorization code (the raw
// request body) for an access token.
func (s *Server) handleExchangeAccessToken(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRoute(s.logger, r.Method, "/nylas/exchange-access-token")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxExchangeBodySize))
	if err != nil {
		s.writeError(w, logger, fmt.Errorf("failed to read request body: %w", err))
		return
	}
	code := strings.TrimSpace(string(body))

	client, err := nylas.New(r.Context(), s.cfg.ClientID, s.cfg.ClientSecret, s.sdkOptions()...)
	if err != nil {
		s.writeError(w, logger, err)
		return
	}

	token, err := client.ExchangeAccessToken(r.Context(), code)
	if err != nil {
		s.metrics.RecordAuthExchange(r.Context(), instrumentation.AuthResultFailure)
		s.writeError(w, logger, err)
		return
	}

	s.metrics.RecordAuthExchange(r.Context(), instrumentation.AuthResultSuccess)
	logger.Info("exchanged authorization code",
		logging.Status(logging.StatusSuccess),
		slog.String("token", logging.SanitizeToken(token)),
	)
	s.writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token})
}

// handleMessages lists all messages for the account identified by the
// bearer token.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRoute(s.logger, r.Method, "/nylas/messages")

	client, ok := s.authedClient(w, r, logger)
	if !ok {
		return
	}

	start := time.Now()
	messages, err := client.Messages().All(r.Context())
	if err != nil {
		s.metrics.RecordAPIOperation(r.Context(), instrumentation.ResourceMessages, "all",
			instrumentation.StatusError, time.Since(start))
		s.writeError(w, logger, err)
		return
	}
	s.metrics.RecordAPIOperation(r.Context(), instrumentation.ResourceMessages, "all",
		instrumentation.StatusSuccess, time.Since(start))

	logger.Info("listed messages",
		logging.Status(logging.StatusSuccess),
		slog.Int("count", len(messages)),
		logging.UserHash(client.Account().EmailAddress),
	)
	s.writeJSON(w, http.StatusOK, messages)
}

// handleRecentMessage returns the most recent message for the account
// identified by the bearer token.
func (s *Server) handleRecentMessage(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRoute(s.logger, r.Method, "/nylas/recent-message")

	client, ok := s.authedClient(w, r, logger)
	if !ok {
		return
	}

	start := time.Now()
	message, err := client.Messages().First(r.Context())
	if err != nil {
		s.metrics.RecordAPIOperation(r.Context(), instrumentation.ResourceMessages, "first",
			instrumentation.StatusError, time.Since(start))
		s.writeError(w, logger, err)
		return
	}
	s.metrics.RecordAPIOperation(r.Context(), instrumentation.ResourceMessages, "first",
		instrumentation.StatusSuccess, time.Since(start))

	if message == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "no messages found"})
		return
	}

	logger.Info("fetched recent message", logging.Status(logging.StatusSuccess))
	s.writeJSON(w, http.StatusOK, message)
}

// authedClient constructs an authenticated client from the request's
// bearer token. On failure it writes the error response and returns
// ok=false.
func (s *Server) authedClient(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*nylas.Client, bool) {
	token, ok := bearerToken(r)
	if !ok {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		return nil, false
	}

	client, err := nylas.New(r.Context(), s.cfg.ClientID, s.cfg.ClientSecret,
		s.sdkOptions(nylas.WithAccessToken(token))...)
	if err != nil {
		s.writeError(w, logger, err)
		return nil, false
	}
	return client, true
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(auth[len(prefix):]), true
}

// errorResponse is the JSON body written for failed requests.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps a client error to an HTTP status and writes the
// response. The provider's message is passed through to the caller;
// internals (wrapped transport errors) are logged but not exposed.
func (s *Server) writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError

	var apiErr *nylas.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case nylas.KindValidation:
			status = http.StatusBadRequest
		case nylas.KindAuth, nylas.KindPrecondition:
			status = http.StatusUnauthorized
		case nylas.KindNetwork, nylas.KindParse:
			status = http.StatusBadGateway
		}
	}

	logger.Error("request failed",
		logging.Err(err),
		slog.Int("http_status", status),
	)
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeJSON writes v as a JSON response with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", logging.Err(err))
	}
}
