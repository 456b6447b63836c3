package redis

import "errors"

var (
	// ErrEmptyConnectionURL is returned by Connect when REDIS_URL is unset.
	// Callers that treat Redis as optional check Config.Enabled first.
	ErrEmptyConnectionURL           = errors.New("redis connection URL is not configured")
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not answer ping before retries ran out")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
)
