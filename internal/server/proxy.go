package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tracker/internal/services"
	"github.com/desertthunder/tracker/internal/sessions"
	"github.com/desertthunder/tracker/internal/shared"
)

// param is a query parameter forwarded upstream. An empty fallback means the
// parameter is only sent when the client supplies it.
type param struct {
	name     string
	fallback string
}

// endpoint maps a gateway route to a Spotify Web API path.
type endpoint struct {
	upstream string
	params   []param
}

var proxyRoutes = map[string]endpoint{
	"/api/me": {upstream: "/me"},
	"/api/top-tracks": {
		upstream: "/me/top/tracks",
		params:   []param{{"time_range", "short_term"}, {"limit", "50"}},
	},
	"/api/top-artists": {
		upstream: "/me/top/artists",
		params:   []param{{"time_range", "short_term"}, {"limit", "50"}},
	},
	"/api/recently-played": {
		upstream: "/me/player/recently-played",
		params:   []param{{"limit", "50"}},
	},
	"/api/audio-features": {
		upstream: "/audio-features",
		params:   []param{{"ids", ""}},
	},
	"/api/shows": {
		upstream: "/me/shows",
		params:   []param{{"limit", "50"}},
	},
}

// ProxyHandler forwards GET /api/* requests to Spotify with the session's access token.
//
// Only the parameters declared for each route are forwarded. Requests whose session is
// missing, unknown or not yet active are rejected before any upstream call.
type ProxyHandler struct {
	client services.APIClient
	store  sessions.Store
	logger *log.Logger
}

// NewProxyHandler creates a gateway handler.
func NewProxyHandler(client services.APIClient, store sessions.Store, logger *log.Logger) *ProxyHandler {
	return &ProxyHandler{client: client, store: store, logger: logger}
}

// Routes returns every gateway path, sorted.
func (h *ProxyHandler) Routes() []string {
	routes := make([]string, 0, len(proxyRoutes))
	for path := range proxyRoutes {
		routes = append(routes, path)
	}
	slices.Sort(routes)
	return routes
}

func (h *ProxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ep, ok := proxyRoutes[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	session, err := h.session(q.Get("session"))
	if err != nil {
		h.logger.Debug("rejected api request", "path", r.URL.Path, "reason", err)
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Invalid session"})
		return
	}

	data, err := h.client.Fetch(r.Context(), ep.upstream, session.AccessToken, ep.query(q))
	if err != nil {
		var upstream *services.UpstreamError
		if errors.As(err, &upstream) {
			h.logger.Error("spotify request failed",
				"endpoint", upstream.Endpoint,
				"status", upstream.Status,
				"detail", upstream.Detail,
				"error", upstream.Err,
			)
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: upstream.Error()})
			return
		}

		h.logger.Error("spotify request failed", "endpoint", ep.upstream, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: (&services.UpstreamError{}).Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// session resolves an Active session for token.
func (h *ProxyHandler) session(token string) (*sessions.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing session", shared.ErrUnauthorized)
	}

	s, err := h.store.Get(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrUnauthorized, err)
	}
	if s.State() != sessions.Active {
		return nil, fmt.Errorf("%w: session is %s", shared.ErrUnauthorized, s.State())
	}
	return s, nil
}

// query picks the declared parameters out of the client's query, applying fallbacks.
func (ep endpoint) query(in url.Values) url.Values {
	if len(ep.params) == 0 {
		return nil
	}

	out := url.Values{}
	for _, p := range ep.params {
		v := in.Get(p.name)
		if v == "" {
			v = p.fallback
		}
		if v != "" {
			out.Set(p.name, v)
		}
	}
	return out
}
