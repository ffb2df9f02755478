// Package logger builds slog loggers for the web app.
//
// Loggers are configured with functional options and can pull request-scoped
// values (request id, tenant) from the context of each log call:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "notesweb"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "request served", logger.Status(200))
package logger
