// Package httpserver runs the HTTP surface with graceful shutdown.
//
// Run opens the listener, serves until the context is cancelled and then
// calls http.Server.Shutdown bounded by Config.ShutdownTimeout. Callers
// usually derive the context from signal.NotifyContext:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.New(cfg.HTTP, router, httpserver.WithLogger(log))
//	if err := srv.Run(ctx); err != nil {
//		return err
//	}
//
// LivenessHandler and ReadinessHandler back the /healthz and /readyz probes.
// Listen failures wrap ErrStart and drain failures wrap ErrShutdown.
package httpserver
