// Package server provides the HTTP server for the grid proxy.
//
// The server uses the Gin web framework. It holds no state between requests:
// each request is handled independently and results in at most one call
// (plus retries) to the selenium grid.
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                         HTTP Server                           │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Middleware Stack                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  RequestID (X-Request-ID, generated when absent)        │  │
//	│  │  Logger (request/response logging)                      │  │
//	│  │  Recovery (panic recovery with zap logging)             │  │
//	│  │  CORS (configured allowed origins)                      │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	├───────────────────────────────────────────────────────────────┤
//	│  /health, /metrics                (root only)                 │
//	│  grid routes mounted under "", "/api", "/api/selenium-grid"   │
//	│  NoRoute → 404 JSON with the attempted path                   │
//	└───────────────────────────────────────────────────────────────┘
//
// # Server Modes
//
// Development Mode (ServerMode = "dev"):
//   - Gin runs in debug mode
//
// Production Mode (ServerMode = "prod"):
//   - Gin runs in release mode
//
// # Server Lifecycle
//
// Creation:
//
//	srv, err := server.NewServer(cfg, handler)
//
// Starting:
//
//	// Blocks until error or shutdown
//	err := srv.Start(ctx)
//
// Requests inherit ctx, so cancelling it aborts in-flight grid calls.
//
// Stopping:
//
//	srv.Stop(ctx)
//
// Performs graceful shutdown, waiting for in-flight requests to complete.
//
// # Middleware
//
// Logger Middleware (middlewares.Logger):
//   - Logs request start: method, path, query, IP, origin, user-agent, timestamp
//   - Logs request end: all above + status code, latency
//   - Uses zap structured logging with "http" logger name
//
// Recovery Middleware (ginzap.CustomRecoveryWithZap):
//   - Recovers from panics in handlers
//   - Logs panic details with stack trace
//   - Returns 500 {success:false, error:"Internal server error", message}
package server
