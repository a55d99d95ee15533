// Package server hosts the blog behind a chi router.
//
// Routes:
//   - GET /healthz answers "ok"
//   - GET {metrics.path} Prometheus exposition, unless metrics.addr puts
//     it on its own listener
//   - GET {static.prefix}* the embedded stylesheet; fingerprinted names
//     are cached forever
//   - GET /_blog/reload live reload WebSocket, dev mode only
//   - /* every other path is a page rendered through the root layout
//
// Run listens on the configured address and shuts down gracefully when
// its context is canceled:
//
//	srv, err := server.New(cfg, server.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
package server
