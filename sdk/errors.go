package relay

import "fmt"

// APIError is returned when the server responds with a non-200 status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("relay: HTTP %d: %s", e.StatusCode, e.Message)
}

// InvalidLanguage reports whether the server rejected the language label.
func (e *APIError) InvalidLanguage() bool {
	return e.Message == "Invalid language"
}
