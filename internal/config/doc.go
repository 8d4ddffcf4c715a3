// Package config defines the configuration structure for the grid proxy.
//
// Configuration is organized into logical sections (Server, Grid, VNC) and uses
// code generation via optgen to create functional option helpers. The struct is
// built once at startup and handed to constructors; nothing reads it globally.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - HTTP server settings
//	├── Grid           - Upstream selenium grid coordinator
//	│   └── Retry      - Retry policy for an unreachable grid
//	├── VNC            - VNC access credentials
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Server Configuration
//
//	┌─────────────────┬───────────────────────────┬────────────────────────────────────┐
//	│ Field           │ Default                   │ Description                        │
//	├─────────────────┼───────────────────────────┼────────────────────────────────────┤
//	│ ServerMode      │ "dev"                     │ Server mode: "prod" or "dev"       │
//	│ HTTPPort        │ 31590                     │ HTTP server listen port            │
//	│ AllowedOrigins  │ ["http://localhost:3000"] │ CORS origins, "*" allows any       │
//	│ MetricsEnabled  │ true                      │ Serve prometheus /metrics          │
//	│ ShutdownTimeout │ 10s                       │ Grace period for in-flight calls   │
//	└─────────────────┴───────────────────────────┴────────────────────────────────────┘
//
// # Grid Configuration
//
//	┌────────────────────┬─────────────────────────┬──────────────────────────────────┐
//	│ Field              │ Default                 │ Description                      │
//	├────────────────────┼─────────────────────────┼──────────────────────────────────┤
//	│ URL                │ "http://localhost:4444" │ Grid coordinator base URL        │
//	│ Timeout            │ 5s                      │ Per attempt timeout              │
//	│ RegistrationSecret │ ""                      │ Sent on distributor calls        │
//	│ Retry.MaxAttempts  │ 3                       │ Attempts when grid unreachable   │
//	│ Retry.Initial...   │ 250ms                   │ First backoff interval           │
//	│ Retry.MaxInterval  │ 2s                      │ Backoff interval cap             │
//	└────────────────────┴─────────────────────────┴──────────────────────────────────┘
//
// # VNC Configuration
//
//	┌──────────────────────┬──────────┬─────────────────────────────────────────────┐
//	│ Field                │ Default  │ Description                                 │
//	├──────────────────────┼──────────┼─────────────────────────────────────────────┤
//	│ Password             │ "secret" │ Shared VNC password of the grid nodes       │
//	│ ExposeSharedPassword │ true     │ Return Password in every status payload     │
//	│ SigningKey           │ ""       │ HMAC key for per-session tokens (random)    │
//	│ TokenTTL             │ 5m       │ Lifetime of a per-session token             │
//	└──────────────────────┴──────────┴─────────────────────────────────────────────┘
//
// # Code Generation
//
//	//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Grid Retry VNC
//
// Generated helpers include:
//
//   - NewConfigurationWithOptionsAndDefaults(...ConfigurationOption) - Create with defaults + options
//   - WithServer(Server), WithGrid(Grid), etc. - Set nested structs
//   - DebugMap() - Returns map for debug logging (respects debugmap tags)
//
// # Usage Example
//
//	cfg := config.NewConfigurationWithOptionsAndDefaults(
//	    config.WithGrid(*config.NewGridWithOptionsAndDefaults(
//	        config.WithURL("http://grid:4444"),
//	    )),
//	    config.WithLogLevel("info"),
//	)
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// # Debug Logging
//
// Secrets (VNC password, signing key, registration secret) are tagged
// `debugmap:"sensitive"` so DebugMap() never prints them:
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
