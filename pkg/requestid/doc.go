// Package requestid correlates log lines of one HTTP request.
//
// Middleware accepts a client supplied X-Request-ID when it is at most 128
// characters of [a-zA-Z0-9_-], and otherwise generates a UUIDv4. The id is
// stored in the request context and echoed in the response header.
// LogExtractor plugs it into pkg/logger so every record logged with the
// request context carries request_id:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LogExtractor()))
//	r.Use(requestid.Middleware)
package requestid
