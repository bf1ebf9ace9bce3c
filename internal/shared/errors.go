package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("spotify credentials not configured")

	// OAuth flow errors
	ErrAccessDenied  = fmt.Errorf("access denied")
	ErrInvalidState  = fmt.Errorf("invalid state parameter")
	ErrTokenExchange = fmt.Errorf("token exchange failed")

	// Session errors
	ErrUnauthorized = fmt.Errorf("invalid session")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
