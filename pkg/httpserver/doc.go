// Package httpserver runs an http.Handler with graceful shutdown on context
// cancellation or SIGINT/SIGTERM, and provides a liveness/readiness handler.
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log), httpserver.WithStopHook(closeRedis))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
package httpserver
