package vnc_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/testcloud/grid-proxy/pkg/errors"
	"github.com/testcloud/grid-proxy/pkg/vnc"
)

var _ = Describe("Issuer", func() {
	var now time.Time

	clock := func() time.Time { return now }

	BeforeEach(func() {
		now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	})

	It("should issue a token that verifies for its session", func() {
		i, err := vnc.NewIssuer("key", time.Minute, vnc.WithClock(clock))
		Expect(err).NotTo(HaveOccurred())

		cred, err := i.Issue("sid-1", "http://node:5555")
		Expect(err).NotTo(HaveOccurred())
		Expect(cred.SessionID).To(Equal("sid-1"))
		Expect(cred.ExpiresAt).To(Equal(now.Add(time.Minute)))

		claims, err := i.Verify(cred.Token, "sid-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.Subject).To(Equal("sid-1"))
		Expect(claims.NodeURI).To(Equal("http://node:5555"))
		Expect(claims.ID).NotTo(BeEmpty())
	})

	It("should give every token a distinct id", func() {
		i, err := vnc.NewIssuer("key", 0, vnc.WithClock(clock))
		Expect(err).NotTo(HaveOccurred())

		a, err := i.Issue("sid-1", "")
		Expect(err).NotTo(HaveOccurred())
		b, err := i.Issue("sid-1", "")
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Token).NotTo(Equal(b.Token))
	})

	It("should default the ttl", func() {
		i, err := vnc.NewIssuer("key", 0, vnc.WithClock(clock))
		Expect(err).NotTo(HaveOccurred())

		cred, err := i.Issue("sid-1", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(cred.ExpiresAt).To(Equal(now.Add(vnc.DefaultTTL)))
	})

	DescribeTable("should reject",
		func(mutate func(i *vnc.Issuer, token string) (string, string)) {
			i, err := vnc.NewIssuer("key", time.Minute, vnc.WithClock(clock))
			Expect(err).NotTo(HaveOccurred())
			cred, err := i.Issue("sid-1", "")
			Expect(err).NotTo(HaveOccurred())

			token, session := mutate(i, cred.Token)
			_, err = i.Verify(token, session)

			Expect(srvErrors.IsInvalidTokenError(err)).To(BeTrue())
		},
		Entry("a token for another session", func(_ *vnc.Issuer, token string) (string, string) {
			return token, "sid-2"
		}),
		Entry("an expired token", func(_ *vnc.Issuer, token string) (string, string) {
			now = now.Add(2 * time.Minute)
			return token, "sid-1"
		}),
		Entry("a tampered token", func(_ *vnc.Issuer, token string) (string, string) {
			return token[:len(token)-2] + "xx", "sid-1"
		}),
		Entry("garbage", func(_ *vnc.Issuer, _ string) (string, string) {
			return "not-a-jwt", "sid-1"
		}),
	)

	It("should reject a token signed with another key", func() {
		a, err := vnc.NewIssuer("", time.Minute)
		Expect(err).NotTo(HaveOccurred())
		b, err := vnc.NewIssuer("", time.Minute)
		Expect(err).NotTo(HaveOccurred())

		cred, err := a.Issue("sid-1", "")
		Expect(err).NotTo(HaveOccurred())

		_, err = b.Verify(cred.Token, "sid-1")
		Expect(srvErrors.IsInvalidTokenError(err)).To(BeTrue())
	})
})
