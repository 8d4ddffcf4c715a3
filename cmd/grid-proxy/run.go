package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/testcloud/grid-proxy/internal/config"
	"github.com/testcloud/grid-proxy/internal/handlers"
	"github.com/testcloud/grid-proxy/internal/server"
	"github.com/testcloud/grid-proxy/internal/services"
	"github.com/testcloud/grid-proxy/pkg/grid"
	"github.com/testcloud/grid-proxy/pkg/vnc"
)

const envPrefix = "GRID_PROXY"

// legacyEnv maps configuration keys to the environment names older deployments use.
var legacyEnv = map[string]string{
	"grid.url":                "SELENIUM_GRID_URL",
	"server.httpport":         "PORT",
	"server.allowedorigins":   "ALLOWED_ORIGINS",
	"vnc.password":            "VNC_PASSWORD",
	"grid.registrationsecret": "REGISTRATION_SECRET",
}

// flagKeys maps each run flag to its configuration key.
var flagKeys = map[string]string{
	"server-mode":                 "server.servermode",
	"http-port":                   "server.httpport",
	"allowed-origins":             "server.allowedorigins",
	"metrics-enabled":             "server.metricsenabled",
	"shutdown-timeout":            "server.shutdowntimeout",
	"grid-url":                    "grid.url",
	"grid-timeout":                "grid.timeout",
	"grid-registration-secret":    "grid.registrationsecret",
	"grid-retry-max-attempts":     "grid.retry.maxattempts",
	"grid-retry-initial-interval": "grid.retry.initialinterval",
	"grid-retry-max-interval":     "grid.retry.maxinterval",
	"vnc-password":                "vnc.password",
	"vnc-expose-shared-password":  "vnc.exposesharedpassword",
	"vnc-signing-key":             "vnc.signingkey",
	"vnc-token-ttl":               "vnc.tokenttl",
	"log-format":                  "logformat",
	"log-level":                   "loglevel",
}

var configFile string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the grid proxy HTTP server",
	Long: `Run the grid proxy HTTP server.

Configuration sources, highest precedence first:
  flags
  GRID_PROXY_* environment variables (e.g. GRID_PROXY_GRID_URL)
  SELENIUM_GRID_URL, PORT, ALLOWED_ORIGINS, VNC_PASSWORD, REGISTRATION_SECRET
  the --config file (yaml)
  built-in defaults`,
	PreRunE: cobrautil.CommandStack(
		cobrautil.SyncViperPreRunE(envPrefix),
	),
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)
	registerRunFlags(runCmd.Flags())
}

func registerRunFlags(fs *pflag.FlagSet) {
	d := config.NewConfigurationWithOptionsAndDefaults()

	fs.StringVar(&configFile, "config", "", "path to a yaml configuration file")

	fs.String("server-mode", d.Server.ServerMode, "server mode: dev or prod")
	fs.Int("http-port", d.Server.HTTPPort, "http listen port")
	fs.StringSlice("allowed-origins", d.Server.AllowedOrigins, "CORS allowed origins, * allows any")
	fs.Bool("metrics-enabled", d.Server.MetricsEnabled, "serve prometheus metrics on /metrics")
	fs.Duration("shutdown-timeout", d.Server.ShutdownTimeout, "grace period for in-flight requests on shutdown")

	fs.String("grid-url", d.Grid.URL, "selenium grid coordinator base url")
	fs.Duration("grid-timeout", d.Grid.Timeout, "timeout of a single grid call")
	fs.String("grid-registration-secret", d.Grid.RegistrationSecret, "secret sent on node drain and removal")
	fs.Uint("grid-retry-max-attempts", d.Grid.Retry.MaxAttempts, "attempts per grid call when the grid is unreachable")
	fs.Duration("grid-retry-initial-interval", d.Grid.Retry.InitialInterval, "first retry backoff interval")
	fs.Duration("grid-retry-max-interval", d.Grid.Retry.MaxInterval, "retry backoff interval cap")

	fs.String("vnc-password", d.VNC.Password, "shared VNC password of the grid nodes")
	fs.Bool("vnc-expose-shared-password", d.VNC.ExposeSharedPassword, "include the shared VNC password in status responses")
	fs.String("vnc-signing-key", d.VNC.SigningKey, "HMAC key for per-session VNC tokens, random when empty")
	fs.Duration("vnc-token-ttl", d.VNC.TokenTTL, "lifetime of a per-session VNC token")

	fs.String("log-format", d.LogFormat, "log format: console or json")
	fs.String("log-level", d.LogLevel, "log level: debug, info, warn, error")
}

// loadConfiguration merges flags, environment and the optional config file onto the defaults.
func loadConfiguration(fs *pflag.FlagSet) (*config.Configuration, error) {
	v := viper.New()

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind env %q: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", configFile, err)
		}
	}

	cfg := config.NewConfigurationWithOptionsAndDefaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfiguration(cmd.Flags())
	if err != nil {
		return err
	}

	flush, err := setupLogger(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer flush()

	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())

	retry := grid.DefaultRetryPolicy()
	retry.MaxAttempts = cfg.Grid.Retry.MaxAttempts
	retry.InitialInterval = cfg.Grid.Retry.InitialInterval
	retry.MaxInterval = cfg.Grid.Retry.MaxInterval

	gridClient, err := grid.NewClient(cfg.Grid.URL,
		grid.WithTimeout(cfg.Grid.Timeout),
		grid.WithRetryPolicy(retry),
		grid.WithRegistrationSecret(cfg.Grid.RegistrationSecret),
	)
	if err != nil {
		return err
	}

	if cfg.VNC.SigningKey == "" {
		zap.S().Warn("no vnc signing key configured, tokens will not survive a restart")
	}
	issuer, err := vnc.NewIssuer(cfg.VNC.SigningKey, cfg.VNC.TokenTTL)
	if err != nil {
		return err
	}

	gridSrv := services.NewGridService(gridClient, issuer)
	h := handlers.New(gridSrv, *cfg)

	srv, err := server.NewServer(cfg, h)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infow("grid proxy listening", "port", cfg.Server.HTTPPort, "grid_url", cfg.Grid.URL)
		errCh <- srv.Start(context.WithoutCancel(ctx))
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.S().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	if err := <-errCh; err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
