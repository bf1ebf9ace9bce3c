// Package services implements the Spotify clients behind the tracker server.
//
// # OAuth
//
// [SpotifyService] implements [OAuthService] on top of [oauth2.Config]. It builds the consent
// URL with the fixed [SpotifyScopes] and show_dialog=true, then exchanges the returned code with
// the client credentials in the form body. The reported expires_in is kept on the [TokenGrant] so
// callers can compute an absolute expiry from the moment they asked for the exchange.
//
// # Web API
//
// [SpotifyService.Fetch] implements [APIClient]: a GET with a bearer token whose body is returned
// unmodified. Any non-2xx status or transport failure becomes an [UpstreamError], which unwraps
// to [shared.ErrAPIRequest]. There are no retries and no caching; the HTTP client carries a
// bounded timeout.
//
// # Health probe
//
// [APIService] is a small raw-HTTP client used by the CLI to call /health on a running server.
package services
