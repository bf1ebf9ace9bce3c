// Package server provides HTTP routing, middleware and the handlers behind the listening tracker.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
// [New] assembles the full surface: request logging, panic recovery and CORS wrap every route.
//
// # OAuth Flow
//
// [OAuthHandler] serves /login and /callback. Login opens a Pending session keyed by a random
// 16 character state and redirects to Spotify. The callback checks the state against the session
// store, exchanges the code and activates the session, then sends the browser back to the
// dashboard with either ?session=<state> or ?error=<marker>.
//
// # API Gateway
//
// [ProxyHandler] serves the read-only /api/* routes. Each request names its session with the
// session query parameter; only Active sessions are forwarded, and only the parameters declared
// for a route reach Spotify. Upstream bodies are relayed verbatim.
//
// # Dashboard
//
// [DashboardHandler] serves the embedded static dashboard and answers every unmatched path with
// index.html.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
