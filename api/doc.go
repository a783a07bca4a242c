// Package api is the client side of the UFV Banner self-service portal.
//
// The api package provides:
// - A sequential HTTP client for the financial aid and registration apps
// - Session cookie propagation between requests (api/session)
// - Strict decoding of every JSON payload (api/schema)
// - Offset based pagination (api/paginate)
// - Reshaping of label/value lists into fixed records (api/reshape)
// - The scholarship and timetable pipelines (api/scholarship, api/timetable)
package api

// ErrorCode defines error types for API operations
type ErrorCode string

const (
	// ErrTransport represents a failed request or a response other than 200
	ErrTransport ErrorCode = "TransportError"
	// ErrNoSession represents a response that should have set session cookies but did not
	ErrNoSession ErrorCode = "NoSession"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
