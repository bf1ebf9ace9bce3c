package server

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tracker/internal/services"
	"github.com/desertthunder/tracker/internal/sessions"
	"github.com/desertthunder/tracker/internal/shared"
)

// stateAttempts bounds retries when a generated state collides with an existing session.
const stateAttempts = 3

// OAuthHandler runs the Spotify authorization code flow for browser sessions.
// Implements the Handler interface for registration with a Router.
//
// GET /login opens a Pending session keyed by a fresh state token and redirects to Spotify.
// GET /callback validates the state, exchanges the code and activates the session.
type OAuthHandler struct {
	oauth    services.OAuthService
	store    sessions.Store
	logger   *log.Logger
	now      func() time.Time
	newState func() (string, error)
}

// NewOAuthHandler creates a new OAuth handler backed by the given session store.
func NewOAuthHandler(oauth services.OAuthService, store sessions.Store, logger *log.Logger, now func() time.Time) *OAuthHandler {
	if now == nil {
		now = time.Now
	}
	return &OAuthHandler{
		oauth:    oauth,
		store:    store,
		logger:   logger,
		now:      now,
		newState: shared.GenerateState,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *OAuthHandler) Routes() []string {
	return []string{"/login", "/callback"}
}

// ServeHTTP dispatches to the login or callback step. Only GET is accepted; HEAD gets a 405.
func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/login":
		h.login(w, r)
	case "/callback":
		h.callback(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *OAuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if !h.oauth.Configured() {
		h.logger.Error("spotify credentials not configured", "hint", "set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET")
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:   "Spotify credentials not configured",
			Message: "Please check your configuration",
		})
		return
	}

	state, err := h.openSession()
	if err != nil {
		h.logger.Error("failed to open session", "error", err)
		writeJSON(w, http.StatusInternalServerError, genericFailure)
		return
	}

	h.logger.Debug("redirecting to spotify")
	http.Redirect(w, r, h.oauth.AuthURL(state), http.StatusFound)
}

// openSession registers a Pending session under a new state token.
func (h *OAuthHandler) openSession() (string, error) {
	var err error
	for range stateAttempts {
		var state string
		if state, err = h.newState(); err != nil {
			return "", err
		}

		err = h.store.Create(state, h.now())
		if errors.Is(err, sessions.ErrDuplicateSession) {
			continue
		}
		return state, err
	}
	return "", err
}

func (h *OAuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if errParam := q.Get("error"); errParam != "" {
		h.logger.Warn("authorization denied", "error", errParam, "description", q.Get("error_description"))
		h.fail(w, r, shared.ErrAccessDenied)
		return
	}

	state := q.Get("state")
	if state == "" || !h.store.Has(state) {
		h.logger.Warn("callback with unknown state")
		h.fail(w, r, shared.ErrInvalidState)
		return
	}

	issued := h.now()
	grant, err := h.oauth.Exchange(r.Context(), q.Get("code"))
	if err != nil {
		h.logger.Error("token exchange failed", "error", err)
		h.fail(w, r, shared.ErrTokenExchange)
		return
	}

	err = h.store.Activate(state, sessions.Fields{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		ExpiresAt:    grant.ExpiresAt(issued),
	})
	switch {
	case errors.Is(err, sessions.ErrSessionActive):
		// A concurrent callback already activated this session; its tokens stand.
		h.logger.Warn("session already active", "error", err)
	case errors.Is(err, sessions.ErrSessionNotFound):
		h.logger.Warn("session expired during exchange")
		h.fail(w, r, shared.ErrInvalidState)
		return
	case err != nil:
		h.logger.Error("failed to store tokens", "error", err)
		h.fail(w, r, shared.ErrTokenExchange)
		return
	}

	h.logger.Info("session activated",
		"token_type", grant.TokenType,
		"expires_at", grant.ExpiresAt(issued).Format(time.RFC3339),
	)
	http.Redirect(w, r, "/?session="+url.QueryEscape(state), http.StatusFound)
}

// fail redirects to the dashboard with the error marker for err.
func (h *OAuthHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	http.Redirect(w, r, "/?error="+errorMarker(err), http.StatusFound)
}

// errorMarker maps callback failures to the dashboard's error query values.
func errorMarker(err error) string {
	switch {
	case errors.Is(err, shared.ErrAccessDenied):
		return "access_denied"
	case errors.Is(err, shared.ErrInvalidState):
		return "invalid_state"
	default:
		return "token_exchange_failed"
	}
}
