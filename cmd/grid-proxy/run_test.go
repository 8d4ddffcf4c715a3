package main

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/pflag"
)

var _ = Describe("loadConfiguration", func() {
	var fs *pflag.FlagSet

	setenv := func(key, value string) {
		Expect(os.Setenv(key, value)).To(Succeed())
		DeferCleanup(os.Unsetenv, key)
	}

	BeforeEach(func() {
		for _, env := range legacyEnv {
			Expect(os.Unsetenv(env)).To(Succeed())
		}
		configFile = ""
		fs = pflag.NewFlagSet("run", pflag.ContinueOnError)
		registerRunFlags(fs)
	})

	It("should return the defaults without flags or environment", func() {
		cfg, err := loadConfiguration(fs)

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Grid.URL).To(Equal("http://localhost:4444"))
		Expect(cfg.Server.HTTPPort).To(Equal(31590))
	})

	// Given a deployment configured with the legacy environment names
	// When the configuration is loaded
	// Then those values should replace the defaults
	It("should read the legacy environment names", func() {
		// Arrange
		setenv("SELENIUM_GRID_URL", "http://legacy-grid:4444")
		setenv("PORT", "8080")
		setenv("ALLOWED_ORIGINS", "http://a.example,http://b.example")
		setenv("VNC_PASSWORD", "legacy-vnc")
		setenv("REGISTRATION_SECRET", "legacy-secret")

		// Act
		cfg, err := loadConfiguration(fs)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Grid.URL).To(Equal("http://legacy-grid:4444"))
		Expect(cfg.Server.HTTPPort).To(Equal(8080))
		Expect(cfg.Server.AllowedOrigins).To(Equal([]string{"http://a.example", "http://b.example"}))
		Expect(cfg.VNC.Password).To(Equal("legacy-vnc"))
		Expect(cfg.Grid.RegistrationSecret).To(Equal("legacy-secret"))
	})

	It("should prefer flags over the legacy environment", func() {
		setenv("SELENIUM_GRID_URL", "http://legacy-grid:4444")
		Expect(fs.Parse([]string{"--grid-url=http://flag-grid:4444", "--grid-timeout=2s"})).To(Succeed())

		cfg, err := loadConfiguration(fs)

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Grid.URL).To(Equal("http://flag-grid:4444"))
		Expect(cfg.Grid.Timeout.String()).To(Equal("2s"))
	})

	It("should reject an invalid result", func() {
		setenv("PORT", "70000")

		_, err := loadConfiguration(fs)

		Expect(err).To(MatchError(ContainSubstring("invalid http port")))
	})
})
