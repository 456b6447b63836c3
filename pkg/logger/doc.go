// Package logger builds the service's *slog.Logger.
//
// New picks a text or JSON handler, applies static attributes, and optionally
// wraps the handler in a ContextHandler that copies request-scoped values
// (the request id, for one) from the context into every record:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "formguard"),
//		logger.WithLevelName(cfg.LogLevel),
//		logger.WithContextExtractors(requestid.LogExtractor()),
//	)
//
// The helpers in attr.go keep attribute keys consistent across packages.
package logger
