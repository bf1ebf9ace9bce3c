// package server contains middleware & handlers for the listening tracker web service
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tracker/internal/services"
	"github.com/desertthunder/tracker/internal/sessions"
	"github.com/desertthunder/tracker/internal/shared"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, recovery and CORS.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the tracker service.
// Implementations handle specific endpoints (OAuth, API proxy, dashboard).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// Options holds the dependencies of the tracker's HTTP surface.
type Options struct {
	Store  sessions.Store
	OAuth  services.OAuthService
	API    services.APIClient
	Logger *log.Logger
	Now    func() time.Time
}

// New builds the router serving /login, /callback, /api/*, /health and the dashboard fallback.
func New(opts Options) *BasicRouter {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	r := NewBasicRouter()
	r.Use(RequestLogger(opts.Logger), Recoverer(opts.Logger), CORS())

	r.Handle(http.MethodGet, "/health", NewHealthHandler(opts.OAuth.Configured, opts.Now))
	r.Handler(NewOAuthHandler(opts.OAuth, opts.Store, opts.Logger, opts.Now))
	r.Handler(NewProxyHandler(opts.API, opts.Store, opts.Logger))
	r.Handler(NewDashboardHandler())

	return r
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
