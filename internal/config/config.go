package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const (
	ServerModeDev  = "dev"
	ServerModeProd = "prod"

	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Grid Retry VNC

type Configuration struct {
	Server    Server `debugmap:"visible"`
	Grid      Grid   `debugmap:"visible"`
	VNC       VNC    `debugmap:"visible"`
	LogFormat string `debugmap:"visible" default:"console"`
	LogLevel  string `debugmap:"visible" default:"debug"`
}

type Server struct {
	ServerMode      string        `debugmap:"visible" default:"dev"`
	HTTPPort        int           `debugmap:"visible" default:"31590"`
	AllowedOrigins  []string      `debugmap:"visible" default:"[\"http://localhost:3000\"]"`
	MetricsEnabled  bool          `debugmap:"visible" default:"true"`
	ShutdownTimeout time.Duration `debugmap:"visible" default:"10s"`
}

type Grid struct {
	URL                string        `debugmap:"visible" default:"http://localhost:4444"`
	Timeout            time.Duration `debugmap:"visible" default:"5s"`
	RegistrationSecret string        `debugmap:"sensitive"`
	Retry              Retry         `debugmap:"visible"`
}

// Retry applies to an unreachable grid only.
type Retry struct {
	MaxAttempts     uint          `debugmap:"visible" default:"3"`
	InitialInterval time.Duration `debugmap:"visible" default:"250ms"`
	MaxInterval     time.Duration `debugmap:"visible" default:"2s"`
}

type VNC struct {
	Password             string        `debugmap:"sensitive" default:"secret"`
	ExposeSharedPassword bool          `debugmap:"visible" default:"true"`
	SigningKey           string        `debugmap:"sensitive"`
	TokenTTL             time.Duration `debugmap:"visible" default:"5m"`
}

func (c *Configuration) Validate() error {
	u, err := url.Parse(c.Grid.URL)
	if err != nil {
		return fmt.Errorf("failed to parse grid url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid grid url %q: scheme and host are required", c.Grid.URL)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port %d", c.Server.HTTPPort)
	}
	switch c.Server.ServerMode {
	case ServerModeDev, ServerModeProd:
	default:
		return fmt.Errorf("invalid server mode %q: must be %q or %q", c.Server.ServerMode, ServerModeDev, ServerModeProd)
	}
	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log format %q: must be %q or %q", c.LogFormat, LogFormatConsole, LogFormatJSON)
	}
	if c.Grid.Timeout <= 0 {
		return fmt.Errorf("grid timeout must be positive, got %s", c.Grid.Timeout)
	}
	if c.Grid.Retry.MaxAttempts == 0 {
		return errors.New("grid retry max attempts must be at least 1")
	}
	return nil
}
