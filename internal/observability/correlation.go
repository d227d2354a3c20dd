// Package observability provides tracing bootstrap and request correlation helpers.
package observability

import "github.com/google/uuid"

// GenerateCorrelationID creates a new unique request correlation ID.
// Wired as the request ID generator so every request carries one.
func GenerateCorrelationID() string {
	return uuid.NewString()
}
