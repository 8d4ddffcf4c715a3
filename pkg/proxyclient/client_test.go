package proxyclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/testcloud/grid-proxy/internal/config"
	"github.com/testcloud/grid-proxy/internal/handlers"
	"github.com/testcloud/grid-proxy/internal/services"
	srvErrors "github.com/testcloud/grid-proxy/pkg/errors"
	"github.com/testcloud/grid-proxy/pkg/grid"
	"github.com/testcloud/grid-proxy/pkg/proxyclient"
	"github.com/testcloud/grid-proxy/pkg/vnc"
)

const gridStatus = `{"value": {"nodes": [{"id": "n1", "uri": "http://n1:5555", "availability": "UP",
	"slots": [{"session": {"sessionId": "sid-1", "capabilities": {"browserName": "chrome"}}}, {}]}]}}`

var _ = Describe("Client", func() {
	var (
		ctx      context.Context
		gridSrv  *httptest.Server
		proxySrv *httptest.Server
		client   *proxyclient.Client
	)

	BeforeEach(func() {
		ctx = context.Background()

		mux := http.NewServeMux()
		mux.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(gridStatus))
		})
		mux.HandleFunc("DELETE /session/sid-1", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"value": null}`))
		})
		mux.HandleFunc("DELETE /session/unknown-id", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		gridSrv = httptest.NewServer(mux)

		cfg := config.NewConfigurationWithOptionsAndDefaults(
			config.WithGrid(*config.NewGridWithOptionsAndDefaults(config.WithURL(gridSrv.URL))),
		)
		gridClient, err := grid.NewClient(cfg.Grid.URL)
		Expect(err).NotTo(HaveOccurred())
		issuer, err := vnc.NewIssuer("", 0)
		Expect(err).NotTo(HaveOccurred())

		h := handlers.New(services.NewGridService(gridClient, issuer), *cfg)
		engine := gin.New()
		for _, mount := range handlers.Mounts {
			handlers.RegisterRoutes(engine.Group(mount), h)
		}
		engine.NoRoute(h.NotFound)
		proxySrv = httptest.NewServer(engine)

		client, err = proxyclient.NewProxyClient(proxySrv.URL+"/api/selenium-grid/", 0)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		proxySrv.Close()
		gridSrv.Close()
	})

	It("should reject an invalid url", func() {
		_, err := proxyclient.NewProxyClient("not a url", 0)
		Expect(err).To(HaveOccurred())
	})

	It("should trim the trailing slash", func() {
		Expect(client.BaseURL()).To(Equal(proxySrv.URL + "/api/selenium-grid"))
	})

	// Given a proxy in front of a grid with one session
	// When the status is fetched through the client
	// Then the decoded snapshot should carry the session and statistics
	It("should fetch the status", func() {
		// Act
		status, err := client.Status(ctx)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(status.Statistics.ActiveSessions).To(Equal(1))
		Expect(status.Statistics.AvailableSlots).To(Equal(1))
		Expect(status.Sessions).To(HaveLen(1))
		Expect(status.Sessions[0].SessionID).To(Equal("sid-1"))
		Expect(status.Nodes[0].Availability).To(Equal("UP"))
		Expect(status.GridURL).To(Equal(gridSrv.URL))
	})

	It("should delete a session", func() {
		msg, err := client.DeleteSession(ctx, "sid-1")

		Expect(err).NotTo(HaveOccurred())
		Expect(msg).To(Equal("Session sid-1 deleted successfully"))
	})

	It("should surface the envelope error", func() {
		_, err := client.DeleteSession(ctx, "unknown-id")

		Expect(srvErrors.IsProxyError(err)).To(BeTrue())
		Expect(err).To(MatchError("Session not found"))
	})

	It("should surface the unreachable grid message", func() {
		gridSrv.Close()

		_, err := client.Status(ctx)

		Expect(srvErrors.IsProxyError(err)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("Cannot connect to Selenium Grid at " + gridSrv.URL))
	})

	It("should fail on a response that is not an envelope", func() {
		plain := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		}))
		defer plain.Close()

		c, err := proxyclient.NewProxyClient(plain.URL, 0)
		Expect(err).NotTo(HaveOccurred())

		_, err = c.Status(ctx)

		Expect(srvErrors.IsProxyError(err)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("502"))
	})

	It("should fail when the proxy is down", func() {
		proxySrv.Close()

		_, err := client.Status(ctx)

		Expect(err).To(HaveOccurred())
		Expect(srvErrors.IsProxyError(err)).To(BeFalse())
	})
})
