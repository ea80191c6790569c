package openai

import "fmt"

// AuthError reports a missing or rejected credential. Credential validity is
// never checked locally; this surfaces the service's own 401/403 response.
type AuthError struct {
	Status int
	Detail string
}

func (e *AuthError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("authentication failed: %s", e.Detail)
	}
	return fmt.Sprintf("authentication failed (status %d): %s", e.Status, e.Detail)
}

// NetworkError reports a transport-level failure before any HTTP status was
// received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("chat completion request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServiceError reports a non-2xx response other than an auth failure, or a
// response body the client could not make sense of.
type ServiceError struct {
	Status int
	Detail string
}

func (e *ServiceError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("chat completion service error: %s", e.Detail)
	}
	return fmt.Sprintf("chat completion service error (status %d): %s", e.Status, e.Detail)
}
