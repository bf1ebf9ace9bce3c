// package services defines the Spotify OAuth and Web API clients used by the server
package services

import (
	"context"
	"encoding/json"
	"net/url"
	"time"
)

// OAuthService is the authorization-code side of a provider: building the consent URL and exchanging the returned code.
type OAuthService interface {
	// Configured reports whether client credentials are present.
	Configured() bool

	// AuthURL returns the provider's authorize URL carrying state.
	AuthURL(state string) string

	// Exchange trades an authorization code for tokens.
	Exchange(ctx context.Context, code string) (*TokenGrant, error)
}

// APIClient issues authenticated read requests against the provider's REST API.
type APIClient interface {
	// Fetch performs a GET on endpoint with the bearer token and query params, returning the raw JSON body.
	Fetch(ctx context.Context, endpoint, accessToken string, params url.Values) (json.RawMessage, error)
}

// TokenGrant is the result of a successful code exchange.
type TokenGrant struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    time.Duration // lifetime reported by the provider
}

// ExpiresAt returns the absolute expiry for a grant obtained at issued.
func (g *TokenGrant) ExpiresAt(issued time.Time) time.Time {
	return issued.Add(g.ExpiresIn)
}
