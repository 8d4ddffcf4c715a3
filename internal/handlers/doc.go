// Package handlers implements the HTTP API layer of the grid proxy.
//
// Handlers delegate to services.GridService and only deal with path parameters,
// response envelopes and the mapping of service errors to status codes.
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Parameter parsing                                            │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                GridService ──► grid.Client                      │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Response Envelope
//
// Every JSON answer except /health is wrapped in v1.Envelope:
//
//	{"success": true, "data": {...}}
//	{"success": false, "error": "...", "details": "..."}
//
// # API Endpoints
//
// Routes are registered by RegisterRoutes once per prefix in Mounts
// ("", "/api", "/api/selenium-grid"):
//
//	┌────────┬──────────────────────────────┬──────────────────────────────────────┐
//	│ Method │ Endpoint                     │ Description                          │
//	├────────┼──────────────────────────────┼──────────────────────────────────────┤
//	│ GET    │ /status                      │ Flattened nodes, sessions, stats     │
//	│ GET    │ /report                      │ Status snapshot as xlsx              │
//	│ GET    │ /config                      │ Non-secret configuration             │
//	│ GET    │ /sessions                    │ Active sessions and count            │
//	│ POST   │ /session                     │ Create a session (201, 400)          │
//	│ GET    │ /session/:sessionId          │ One active session                   │
//	│ DELETE │ /session/:sessionId          │ Kill a session                       │
//	│ GET    │ /session/:sessionId/se/vnc   │ Always 501                           │
//	│ POST   │ /session/:sessionId/vnc/token│ Per-session VNC token                │
//	│ GET    │ /nodes/:nodeId               │ One node                             │
//	│ POST   │ /nodes/:nodeId/drain         │ Drain a node                         │
//	│ DELETE │ /nodes/:nodeId               │ Remove a node                        │
//	│ GET    │ /queue                       │ Pending new session requests         │
//	│ DELETE │ /queue                       │ Clear the new session queue          │
//	└────────┴──────────────────────────────┴──────────────────────────────────────┘
//
// Health (GET /health) and NotFound are wired at the router root by the server.
//
// # Error Handling
//
//	┌──────────────────────────────┬─────────────┬──────────────────────────────────┐
//	│ Error                        │ HTTP Status │ Body error                       │
//	├──────────────────────────────┼─────────────┼──────────────────────────────────┤
//	│ UpstreamUnreachableError     │ 503         │ names the configured grid URL    │
//	│ SessionNotFoundError         │ 404         │ "Session not found"              │
//	│ NodeNotFoundError            │ 404         │ "Node not found"                 │
//	│ anything else                │ 500         │ per route message, with details  │
//	└──────────────────────────────┴─────────────┴──────────────────────────────────┘
//
// A grid timeout is an UpstreamError and therefore a 500.
package handlers
