package report_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/testcloud/grid-proxy/internal/models"
	"github.com/testcloud/grid-proxy/internal/report"
)

var _ = Describe("Report", func() {
	takenAt := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)

	It("should name the file after the snapshot time", func() {
		Expect(report.Filename(takenAt)).To(Equal("grid-report-20240304-050607.xlsx"))
	})

	// Given a view with one node and one active session out of two slots
	// When we build the report
	// Then each sheet should hold the matching rows
	It("should write summary, nodes and sessions", func() {
		// Arrange
		session := models.Session{
			SessionID:    "sid-1",
			Capabilities: models.Capabilities{"browserName": "chrome", "browserVersion": "120"},
			NodeID:       "n1",
			NodeURI:      "http://n1:5555",
		}
		view := models.GridView{
			Nodes: []models.GridNode{{
				ID:           "n1",
				URI:          "http://n1:5555",
				Availability: models.AvailabilityUp,
				Slots:        []models.Slot{{ID: "s1", Session: &session}, {ID: "s2"}},
			}},
			Sessions: []models.Session{session},
			Statistics: models.GridStatistics{
				TotalNodes: 1, TotalSlots: 2, ActiveSessions: 1, AvailableSlots: 1,
			},
		}

		// Act
		buf, err := report.Build(view, "http://grid:4444", takenAt)
		Expect(err).NotTo(HaveOccurred())

		// Assert
		f, err := excelize.OpenReader(buf)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		Expect(f.GetSheetList()).To(Equal([]string{"Summary", "Nodes", "Sessions"}))

		summary, err := f.GetRows("Summary")
		Expect(err).NotTo(HaveOccurred())
		Expect(summary[0]).To(Equal([]string{"Grid URL", "http://grid:4444"}))
		Expect(summary[4]).To(Equal([]string{"Active Sessions", "1"}))

		nodes, err := f.GetRows("Nodes")
		Expect(err).NotTo(HaveOccurred())
		Expect(nodes).To(HaveLen(2))
		Expect(nodes[1]).To(Equal([]string{"n1", "http://n1:5555", "UP", "2", "1", "1"}))

		sessions, err := f.GetRows("Sessions")
		Expect(err).NotTo(HaveOccurred())
		Expect(sessions).To(HaveLen(2))
		Expect(sessions[1][0]).To(Equal("sid-1"))
		Expect(sessions[1][1]).To(Equal("chrome"))
		Expect(sessions[1][2]).To(Equal("120"))
		Expect(sessions[1][7]).To(Equal("browserName=chrome; browserVersion=120"))
	})

	It("should build a report for an empty grid", func() {
		buf, err := report.Build(models.GridView{}, "http://grid:4444", takenAt)
		Expect(err).NotTo(HaveOccurred())

		f, err := excelize.OpenReader(buf)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		sessions, err := f.GetRows("Sessions")
		Expect(err).NotTo(HaveOccurred())
		Expect(sessions).To(HaveLen(1))
	})
})
