package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/testcloud/grid-proxy/api/v1"
	"github.com/testcloud/grid-proxy/internal/config"
	"github.com/testcloud/grid-proxy/internal/handlers"
	"github.com/testcloud/grid-proxy/internal/services"
	"github.com/testcloud/grid-proxy/pkg/grid"
	"github.com/testcloud/grid-proxy/pkg/vnc"
)

var _ = Describe("Health and config handlers", func() {
	var router *gin.Engine

	BeforeEach(func() {
		cfg := config.NewConfigurationWithOptionsAndDefaults(
			config.WithGrid(*config.NewGridWithOptionsAndDefaults(
				config.WithURL("http://grid.invalid:4444"),
				config.WithRegistrationSecret("do-not-leak"),
			)),
		)
		client, err := grid.NewClient(cfg.Grid.URL)
		Expect(err).NotTo(HaveOccurred())
		issuer, err := vnc.NewIssuer("", 0)
		Expect(err).NotTo(HaveOccurred())

		h := handlers.New(services.NewGridService(client, issuer), *cfg)
		router = gin.New()
		router.GET("/health", h.Health)
		handlers.RegisterRoutes(router.Group("/api"), h)
	})

	It("should report healthy without calling the grid", func() {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		Expect(rec.Code).To(Equal(http.StatusOK))

		var health v1.Health
		Expect(json.Unmarshal(rec.Body.Bytes(), &health)).To(Succeed())
		Expect(health.Status).To(Equal("healthy"))
		Expect(health.Service).To(Equal("Selenium Grid Backend Proxy"))
		Expect(health.Uptime).To(BeNumerically(">=", 0))

		_, err := time.Parse(time.RFC3339Nano, health.Timestamp)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should expose the configuration without secrets", func() {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/config", nil))

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).NotTo(ContainSubstring("do-not-leak"))
		Expect(rec.Body.String()).NotTo(ContainSubstring("secret"))
		Expect(rec.Body.String()).To(ContainSubstring(`"gridUrl":"http://grid.invalid:4444"`))
		Expect(rec.Body.String()).To(ContainSubstring(`"gridTimeout":"5s"`))
	})
})
