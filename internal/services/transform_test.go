package services_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/testcloud/grid-proxy/internal/models"
	"github.com/testcloud/grid-proxy/internal/services"
	"github.com/testcloud/grid-proxy/pkg/grid"
)

func rawStatus(payload string) *grid.RawStatus {
	var raw grid.RawStatus
	Expect(json.Unmarshal([]byte(payload), &raw)).To(Succeed())
	return &raw
}

var _ = Describe("TransformStatus", func() {
	// Given one node with two slots, one of them running session sid-1
	// When we transform the status
	// Then statistics and the flattened session should match the node
	It("should flatten one node with one active session", func() {
		// Arrange
		raw := rawStatus(`{"value": {"nodes": [{
			"id": "node-1", "uri": "http://10.0.0.5:5555", "availability": "UP",
			"slots": [
				{"id": "s1", "stereotype": {"browserName": "chrome"}, "session": {"sessionId": "sid-1", "capabilities": {"browserName": "chrome"}}},
				{"id": "s2", "stereotype": {"browserName": "chrome"}, "session": null}
			]}]}}`)

		// Act
		view := services.TransformStatus(raw)

		// Assert
		Expect(view.Statistics).To(Equal(models.GridStatistics{
			TotalNodes:     1,
			TotalSlots:     2,
			ActiveSessions: 1,
			AvailableSlots: 1,
		}))
		Expect(view.Sessions).To(HaveLen(1))
		Expect(view.Sessions[0].SessionID).To(Equal("sid-1"))
		Expect(view.Sessions[0].Capabilities).To(Equal(models.Capabilities{"browserName": "chrome"}))
		Expect(view.Sessions[0].NodeID).To(Equal("node-1"))
		Expect(view.Sessions[0].NodeURI).To(Equal("http://10.0.0.5:5555"))
	})

	DescribeTable("should never fail on incomplete payloads",
		func(payload string) {
			var raw *grid.RawStatus
			if payload != "" {
				raw = rawStatus(payload)
			}

			view := services.TransformStatus(raw)

			Expect(view.Nodes).NotTo(BeNil())
			Expect(view.Nodes).To(BeEmpty())
			Expect(view.Sessions).NotTo(BeNil())
			Expect(view.Sessions).To(BeEmpty())
			Expect(view.Statistics).To(Equal(models.GridStatistics{}))
		},
		Entry("nil status", ""),
		Entry("missing value", `{}`),
		Entry("null value", `{"value": null}`),
		Entry("missing nodes", `{"value": {"ready": true}}`),
		Entry("malformed nodes", `{"value": {"nodes": "none"}}`),
	)

	It("should count a node without slots", func() {
		view := services.TransformStatus(rawStatus(`{"value": {"nodes": [{"id": "n1"}]}}`))

		Expect(view.Statistics.TotalNodes).To(Equal(1))
		Expect(view.Statistics.TotalSlots).To(Equal(0))
		Expect(view.Statistics.AvailableSlots).To(Equal(0))
		Expect(view.Nodes[0].Slots).NotTo(BeNil())
	})

	It("should default a missing availability to UNKNOWN", func() {
		view := services.TransformStatus(rawStatus(`{"value": {"nodes": [{"id": "n1"}, {"id": "n2", "availability": "DRAINING"}]}}`))

		Expect(view.Nodes[0].Availability).To(Equal(models.AvailabilityUnknown))
		Expect(view.Nodes[1].Availability).To(Equal(models.AvailabilityDraining))
	})

	Context("capabilities", func() {
		It("should fall back to the slot stereotype", func() {
			view := services.TransformStatus(rawStatus(`{"value": {"nodes": [{"id": "n1", "slots": [
				{"stereotype": {"browserName": "firefox"}, "session": {"sessionId": "a"}}
			]}]}}`))

			Expect(view.Sessions[0].Capabilities).To(Equal(models.Capabilities{"browserName": "firefox"}))
		})

		It("should keep empty session capabilities over the stereotype", func() {
			view := services.TransformStatus(rawStatus(`{"value": {"nodes": [{"id": "n1", "slots": [
				{"stereotype": {"browserName": "firefox"}, "session": {"sessionId": "a", "capabilities": {}}}
			]}]}}`))

			Expect(view.Sessions[0].Capabilities).To(BeEmpty())
		})

		It("should use an empty map when neither is present", func() {
			view := services.TransformStatus(rawStatus(`{"value": {"nodes": [{"id": "n1", "slots": [{"session": {"sessionId": "a"}}]}]}}`))

			Expect(view.Sessions[0].Capabilities).NotTo(BeNil())
			Expect(view.Sessions[0].Capabilities).To(BeEmpty())
		})
	})

	It("should keep upstream order", func() {
		view := services.TransformStatus(rawStatus(`{"value": {"nodes": [
			{"id": "b", "slots": [{"session": {"sessionId": "z"}}]},
			{"id": "a", "slots": [{"session": {"sessionId": "y"}}, {"session": {"sessionId": "x"}}]}
		]}}`))

		Expect(view.Nodes[0].ID).To(Equal("b"))
		Expect(view.Nodes[1].ID).To(Equal("a"))
		ids := []string{}
		for _, s := range view.Sessions {
			ids = append(ids, s.SessionID)
		}
		Expect(ids).To(Equal([]string{"z", "y", "x"}))
	})

	It("should keep the invariants over several nodes", func() {
		view := services.TransformStatus(rawStatus(`{"value": {"nodes": [
			{"id": "n1", "slots": [{"session": {"sessionId": "a"}}, {}, {}]},
			{"id": "n2", "slots": [{"session": {"sessionId": "b"}}, {"session": {"sessionId": "c"}}]},
			{"id": "n3"}
		]}}`))

		stats := view.Statistics
		Expect(stats.TotalNodes).To(Equal(len(view.Nodes)))
		Expect(stats.ActiveSessions).To(Equal(len(view.Sessions)))
		Expect(stats.TotalSlots).To(Equal(5))
		Expect(stats.AvailableSlots).To(Equal(stats.TotalSlots - stats.ActiveSessions))
		Expect(stats.AvailableSlots).To(BeNumerically(">=", 0))
	})

	It("should be deterministic", func() {
		raw := rawStatus(`{"value": {"nodes": [{"id": "n1", "uri": "u", "slots": [{"id": "s", "session": {"sessionId": "a", "capabilities": {"k": 1}}}]}]}}`)

		Expect(services.TransformStatus(raw)).To(Equal(services.TransformStatus(raw)))
	})

	It("should keep the slot detail for each slot", func() {
		view := services.TransformStatus(rawStatus(`{"value": {"nodes": [{"id": "n1", "slots": [{"id": "s1", "extra": 1}]}]}}`))

		Expect(view.Nodes[0].Slots[0].Detail).To(MatchJSON(`{"id": "s1", "extra": 1}`))
		Expect(view.Nodes[0].Slots[0].Available()).To(BeTrue())
	})
})
