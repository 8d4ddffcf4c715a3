package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	srvErrors "github.com/testcloud/grid-proxy/pkg/errors"
	"github.com/testcloud/grid-proxy/pkg/poller"
	"github.com/testcloud/grid-proxy/pkg/proxyclient"
)

var _ = Describe("Grid proxy", Ordered, func() {
	var (
		ctx    context.Context
		httpc  *http.Client
		client *proxyclient.Client
	)

	BeforeAll(func() {
		ctx = context.Background()
		httpc = &http.Client{Timeout: cfg.Timeout}

		var err error
		client, err = proxyclient.NewProxyClient(cfg.ProxyURL+"/api/selenium-grid", cfg.Timeout)
		Expect(err).NotTo(HaveOccurred())

		Eventually(func() int {
			resp, err := httpc.Get(cfg.ProxyURL + "/health")
			if err != nil {
				return 0
			}
			defer resp.Body.Close()
			return resp.StatusCode
		}, time.Minute, time.Second).Should(Equal(http.StatusOK))
	})

	It("should report the grid status", func() {
		status, err := client.Status(ctx)
		Expect(err).NotTo(HaveOccurred())

		zap.S().Infow("grid status", "nodes", status.Statistics.TotalNodes, "sessions", status.Statistics.ActiveSessions)

		Expect(status.GridURL).To(Equal(cfg.GridURL))
		Expect(status.Statistics.TotalNodes).To(Equal(len(status.Nodes)))
		Expect(status.Statistics.ActiveSessions).To(Equal(len(status.Sessions)))
		Expect(status.Statistics.AvailableSlots).To(Equal(status.Statistics.TotalSlots - status.Statistics.ActiveSessions))
	})

	It("should answer the same status under every mount", func() {
		for _, prefix := range []string{"", "/api", "/api/selenium-grid"} {
			resp, err := httpc.Get(cfg.ProxyURL + prefix + "/status")
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK), prefix)
		}
	})

	It("should refuse to proxy VNC streams", func() {
		resp, err := httpc.Get(cfg.ProxyURL + "/api/selenium-grid/session/any/se/vnc")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		Expect(resp.StatusCode).To(Equal(http.StatusNotImplemented))
	})

	It("should issue a VNC token for an active session", func() {
		if cfg.SessionID == "" {
			Skip("no -session-id given")
		}

		resp, err := httpc.Post(cfg.ProxyURL+"/api/selenium-grid/session/"+cfg.SessionID+"/vnc/token", "application/json", nil)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))

		var body struct {
			Data struct {
				Token string `json:"token"`
			} `json:"data"`
		}
		Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
		Expect(body.Data.Token).NotTo(BeEmpty())
	})

	It("should answer 404 when killing an unknown session", func() {
		if !cfg.AllowWrite {
			Skip("write specs disabled, use -allow-write")
		}

		_, err := client.DeleteSession(ctx, "00000000000000000000000000000000")

		Expect(srvErrors.IsProxyError(err)).To(BeTrue())
		Expect(err.(*srvErrors.ProxyError).StatusCode).To(Equal(http.StatusNotFound))
	})

	It("should keep a poller fed", func() {
		updates := make(chan poller.Update, 16)
		p := poller.NewPoller(client, func(u poller.Update) {
			select {
			case updates <- u:
			default:
			}
		}, poller.WithInterval(time.Second))

		Expect(p.Start(ctx)).To(Succeed())
		defer p.Stop()

		for range 2 {
			var u poller.Update
			Eventually(updates, 10*time.Second).Should(Receive(&u))
			Expect(u.Err).NotTo(HaveOccurred())
		}
	})
})
