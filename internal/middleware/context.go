package middleware

// Context keys shared between middleware and handlers.
const (
	ContextKeyRequestID = "request_id"
)

// HeaderRequestID carries the request id in and out of the service.
const HeaderRequestID = "X-Request-ID"
