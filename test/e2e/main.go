package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

type configuration struct {
	ProxyURL   string
	GridURL    string
	Timeout    time.Duration
	SessionID  string
	AllowWrite bool
}

var cfg configuration

func (c configuration) Validate() error {
	for name, raw := range map[string]string{"proxy-url": c.ProxyURL, "grid-url": c.GridURL} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %v", name, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s %q", name, raw)
		}
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}

func main() {
	flag.StringVar(&cfg.ProxyURL, "proxy-url", "http://localhost:31590", "Grid proxy root url")
	flag.StringVar(&cfg.GridURL, "grid-url", "http://localhost:4444", "Grid url the proxy is configured with")
	flag.DurationVar(&cfg.Timeout, "timeout", 10*time.Second, "Timeout of a single call")
	flag.StringVar(&cfg.SessionID, "session-id", "", "An active session to issue a VNC token for (optional)")
	flag.BoolVar(&cfg.AllowWrite, "allow-write", false, "Run specs that kill sessions on the grid")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("failed to validate configuration: %v", err)
	}

	RegisterFailHandler(Fail)
	if !RunSpecs(&testing.T{}, "E2E Suite") {
		os.Exit(1)
	}
}
