package config_test

import (
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/testcloud/grid-proxy/internal/config"
)

var _ = Describe("Configuration", func() {
	Context("defaults", func() {
		It("should match the documented defaults", func() {
			cfg := config.NewConfigurationWithOptionsAndDefaults()

			Expect(cfg.Server.ServerMode).To(Equal(config.ServerModeDev))
			Expect(cfg.Server.HTTPPort).To(Equal(31590))
			Expect(cfg.Server.AllowedOrigins).To(Equal([]string{"http://localhost:3000"}))
			Expect(cfg.Server.MetricsEnabled).To(BeTrue())
			Expect(cfg.Server.ShutdownTimeout).To(Equal(10 * time.Second))

			Expect(cfg.Grid.URL).To(Equal("http://localhost:4444"))
			Expect(cfg.Grid.Timeout).To(Equal(5 * time.Second))
			Expect(cfg.Grid.Retry.MaxAttempts).To(Equal(uint(3)))
			Expect(cfg.Grid.Retry.InitialInterval).To(Equal(250 * time.Millisecond))
			Expect(cfg.Grid.Retry.MaxInterval).To(Equal(2 * time.Second))

			Expect(cfg.VNC.Password).To(Equal("secret"))
			Expect(cfg.VNC.ExposeSharedPassword).To(BeTrue())
			Expect(cfg.VNC.TokenTTL).To(Equal(5 * time.Minute))

			Expect(cfg.LogFormat).To(Equal(config.LogFormatConsole))
			Expect(cfg.LogLevel).To(Equal("debug"))
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should let options override defaults", func() {
			cfg := config.NewConfigurationWithOptionsAndDefaults(
				config.WithGrid(*config.NewGridWithOptionsAndDefaults(
					config.WithURL("http://hub:4444"),
				)),
				config.WithLogLevel("info"),
			)

			Expect(cfg.Grid.URL).To(Equal("http://hub:4444"))
			Expect(cfg.Grid.Timeout).To(Equal(5 * time.Second))
			Expect(cfg.LogLevel).To(Equal("info"))
		})
	})

	DescribeTable("Validate should reject",
		func(mutate func(c *config.Configuration), msg string) {
			cfg := config.NewConfigurationWithOptionsAndDefaults()
			mutate(cfg)

			err := cfg.Validate()

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(msg))
		},
		Entry("a grid url without host", func(c *config.Configuration) { c.Grid.URL = "localhost" }, "invalid grid url"),
		Entry("a port out of range", func(c *config.Configuration) { c.Server.HTTPPort = 70000 }, "invalid http port"),
		Entry("an unknown server mode", func(c *config.Configuration) { c.Server.ServerMode = "staging" }, "invalid server mode"),
		Entry("an unknown log format", func(c *config.Configuration) { c.LogFormat = "xml" }, "invalid log format"),
		Entry("a zero grid timeout", func(c *config.Configuration) { c.Grid.Timeout = 0 }, "grid timeout"),
		Entry("zero retry attempts", func(c *config.Configuration) { c.Grid.Retry.MaxAttempts = 0 }, "max attempts"),
	)

	It("should keep secrets out of the debug map", func() {
		cfg := config.NewConfigurationWithOptionsAndDefaults(
			config.WithVNC(*config.NewVNCWithOptionsAndDefaults(
				config.WithPassword("vnc-pass-123"),
				config.WithSigningKey("signing-key-456"),
			)),
			config.WithGrid(*config.NewGridWithOptionsAndDefaults(
				config.WithRegistrationSecret("reg-secret-789"),
			)),
		)

		dump := fmt.Sprintf("%v", cfg.DebugMap())

		Expect(dump).To(ContainSubstring("http://localhost:4444"))
		Expect(dump).NotTo(ContainSubstring("vnc-pass-123"))
		Expect(dump).NotTo(ContainSubstring("signing-key-456"))
		Expect(dump).NotTo(ContainSubstring("reg-secret-789"))
	})

	It("should render nested sections as maps in the debug map", func() {
		cfg := config.NewConfigurationWithOptionsAndDefaults()

		dm := cfg.DebugMap()

		Expect(dm["Grid"]).To(HaveKeyWithValue("URL", "http://localhost:4444"))
		Expect(dm["Grid"]).To(HaveKey("Retry"))
		Expect(dm["Server"]).To(HaveKey("HTTPPort"))
		Expect(dm["VNC"]).To(HaveKey("Password"))
		Expect(fmt.Sprintf("%v", dm)).NotTo(ContainSubstring("map of size"))
	})
})
