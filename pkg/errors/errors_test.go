package errors_test

import (
	"errors"
	"fmt"
	"syscall"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/testcloud/grid-proxy/pkg/errors"
)

var _ = Describe("Errors", func() {
	It("should find an unreachable error through wrapping", func() {
		err := fmt.Errorf("fetch: %w", srvErrors.NewUpstreamUnreachableError("http://grid:4444", syscall.ECONNREFUSED))

		Expect(srvErrors.IsUpstreamUnreachableError(err)).To(BeTrue())
		Expect(srvErrors.IsUpstreamError(err)).To(BeFalse())
		Expect(errors.Is(err, syscall.ECONNREFUSED)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("http://grid:4444"))
	})

	It("should keep the status code of an upstream error", func() {
		err := srvErrors.NewUpstreamError("grid status request failed", 502, nil)

		Expect(err.Error()).To(Equal("grid status request failed"))
		Expect(err.StatusCode).To(Equal(502))
	})

	It("should tell sessions and nodes apart", func() {
		session := srvErrors.NewSessionNotFoundError("sid-1")
		node := srvErrors.NewNodeNotFoundError("n1")

		Expect(srvErrors.IsResourceNotFoundError(session)).To(BeTrue())
		Expect(srvErrors.IsSessionNotFoundError(session)).To(BeTrue())
		Expect(srvErrors.IsNodeNotFoundError(session)).To(BeFalse())
		Expect(srvErrors.IsNodeNotFoundError(node)).To(BeTrue())
		Expect(session.Error()).To(Equal(`session "sid-1" not found`))
	})

	It("should render a proxy error with its details", func() {
		Expect(srvErrors.NewProxyError(404, "Session not found", "").Error()).To(Equal("Session not found"))
		Expect(srvErrors.NewProxyError(500, "Failed", "boom").Error()).To(Equal("Failed: boom"))
	})

	It("should return false for unrelated errors", func() {
		err := errors.New("plain")

		Expect(srvErrors.IsUpstreamUnreachableError(err)).To(BeFalse())
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeFalse())
		Expect(srvErrors.IsInvalidTokenError(err)).To(BeFalse())
		Expect(srvErrors.IsProxyError(nil)).To(BeFalse())
	})
})
