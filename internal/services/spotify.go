// Spotify implementation of [OAuthService] and [APIClient]
//
// Endpoints documented at https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/desertthunder/tracker/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	defaultTimeout = 10 * time.Second
	maxErrorDetail = 512
)

// SpotifyScopes are requested on every login.
var SpotifyScopes = []string{
	"user-read-private",
	"user-read-email",
	"user-top-read",
	"user-read-recently-played",
	"user-library-read",
	"user-read-playback-state",
}

// UpstreamError reports a failed Spotify API call.
//
// Status is the upstream HTTP status, or 0 when the request never produced a response.
// Detail carries a truncated response body for server-side logs and is never part of Error.
// Err holds the transport or read failure when no usable response was received.
type UpstreamError struct {
	Endpoint string
	Status   int
	Detail   string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return "Spotify API request failed: Unknown error"
	}
	return fmt.Sprintf("Spotify API request failed: %d", e.Status)
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{shared.ErrAPIRequest}
	}
	return []error{shared.ErrAPIRequest, e.Err}
}

// SpotifyOpts configures a [SpotifyService]. Empty URLs fall back to the public Spotify endpoints.
type SpotifyOpts struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthURL      string
	TokenURL     string
	APIBaseURL   string
	HTTPClient   *http.Client
	Now          func() time.Time
}

// SpotifyService implements [OAuthService] and [APIClient] for the Spotify Web API.
type SpotifyService struct {
	config     *oauth2.Config
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewSpotifyService creates a Spotify service. Missing credentials are allowed; check [SpotifyService.Configured].
func NewSpotifyService(opts SpotifyOpts) *SpotifyService {
	if opts.AuthURL == "" {
		opts.AuthURL = spotifyAuthURL
	}
	if opts.TokenURL == "" {
		opts.TokenURL = spotifyTokenURL
	}
	if opts.APIBaseURL == "" {
		opts.APIBaseURL = spotifyBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	config := &oauth2.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		RedirectURL:  opts.RedirectURI,
		Scopes:       SpotifyScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   opts.AuthURL,
			TokenURL:  opts.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	return &SpotifyService{
		config:     config,
		baseURL:    opts.APIBaseURL,
		httpClient: opts.HTTPClient,
		now:        opts.Now,
	}
}

// Configured reports whether a client ID and secret were supplied.
func (s *SpotifyService) Configured() bool {
	return s.config.ClientID != "" && s.config.ClientSecret != ""
}

// AuthURL returns the Spotify authorize URL for state, forcing the consent dialog.
func (s *SpotifyService) AuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.SetAuthURLParam("show_dialog", "true"))
}

// Exchange trades an authorization code for access and refresh tokens.
//
// Client credentials are sent in the form body alongside grant_type, code and redirect_uri.
func (s *SpotifyService) Exchange(ctx context.Context, code string) (*TokenGrant, error) {
	if !s.Configured() {
		return nil, shared.ErrMissingCredentials
	}
	if code == "" {
		return nil, fmt.Errorf("%w: missing authorization code", shared.ErrTokenExchange)
	}

	issued := s.now()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTokenExchange, err)
	}

	return &TokenGrant{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresIn:    expiresIn(token, issued),
	}, nil
}

// expiresIn reads the expires_in value of the token response, falling back to the computed expiry.
func expiresIn(token *oauth2.Token, issued time.Time) time.Duration {
	switch v := token.Extra("expires_in").(type) {
	case float64:
		return time.Duration(v * float64(time.Second))
	case int64:
		return time.Duration(v) * time.Second
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return time.Duration(n) * time.Second
		}
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Duration(n) * time.Second
		}
	}

	if token.Expiry.IsZero() {
		return 0
	}
	return token.Expiry.Sub(issued).Round(time.Second)
}

// Fetch performs an authenticated GET against the Spotify API and returns the body unmodified.
func (s *SpotifyService) Fetch(ctx context.Context, endpoint, accessToken string, params url.Values) (json.RawMessage, error) {
	apiURL := s.baseURL + endpoint
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, &UpstreamError{Endpoint: endpoint, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Endpoint: endpoint, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Endpoint: endpoint, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := string(body)
		if len(detail) > maxErrorDetail {
			detail = detail[:maxErrorDetail]
		}
		return nil, &UpstreamError{Endpoint: endpoint, Status: resp.StatusCode, Detail: detail}
	}

	return json.RawMessage(body), nil
}
