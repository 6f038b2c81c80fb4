package gemini

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoCredentials is returned when the rotator is asked to call the model
// provider but no API keys were configured.
var ErrNoCredentials = errors.New("no model provider credentials configured")

// APIError is a non-2xx response from the model provider.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("model provider returned HTTP %d: %s", e.StatusCode, e.Body)
}

// ExhaustedError is returned when every configured credential failed with a
// rotatable error. Last carries the final upstream failure.
type ExhaustedError struct {
	Last error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all model provider credentials exhausted: %v", e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// isRotatable reports whether a failure should advance the credential
// cursor. Rate limiting (429) and bad credentials (401) are worth trying
// the next key for; everything else is terminal.
func isRotatable(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusTooManyRequests ||
		apiErr.StatusCode == http.StatusUnauthorized
}
