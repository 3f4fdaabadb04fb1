// Package logger builds *slog.Logger instances with functional options and
// provides attribute helpers so notification components log with consistent
// keys.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// handler with LogHandlerDecorator, which injects values pulled from the
// context (for example a request id) on every record:
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "notification-demo"),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "flash messages restored",
//	    logger.Container("default"),
//	    slog.Int("count", n),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
