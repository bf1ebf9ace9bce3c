// Package sessions holds the state token to Spotify token mapping created by the OAuth flow.
//
// A [Session] starts Pending when /login issues a state token and becomes Active once the
// callback exchanges the authorization code. The [Store] interface keeps the OAuth and proxy
// handlers independent of where sessions live; [MemoryStore] is the process-local implementation.
//
// # Eviction
//
// [MemoryStore.Sweep] drops Pending sessions older than the pending TTL (a login whose callback
// never arrived) and Active sessions past their expiry, since access tokens are not refreshed.
// [MemoryStore.Start] runs the sweep on a ticker until its context is cancelled.
package sessions
