package phonepe

import "fmt"

// AuthError reports a failed token exchange. Body carries the upstream error
// payload when the gateway returned one.
type AuthError struct {
	Body string
	Err  error
}

func (e *AuthError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("phonepe auth failed: %s", e.Body)
	}
	return fmt.Sprintf("phonepe auth failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// GatewayError reports a non-2xx or malformed response from the pay or
// status endpoints.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("phonepe gateway error (status %d): %s", e.StatusCode, e.Body)
}
