package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/testcloud/grid-proxy/internal/models"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	summarySheet  = "Summary"
	nodesSheet    = "Nodes"
	sessionsSheet = "Sessions"
)

// Filename is the attachment name for a report taken at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("grid-report-%s.xlsx", t.UTC().Format("20060102-150405"))
}

// Build writes one grid snapshot as a workbook with a summary, one row per node
// and one row per active session.
func Build(view models.GridView, gridURL string, takenAt time.Time) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(nodesSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sessionsSheet); err != nil {
		return nil, err
	}

	summary := [][]any{
		{"Grid URL", gridURL},
		{"Taken At", takenAt.UTC().Format(time.RFC3339)},
		{"Total Nodes", view.Statistics.TotalNodes},
		{"Total Slots", view.Statistics.TotalSlots},
		{"Active Sessions", view.Statistics.ActiveSessions},
		{"Available Slots", view.Statistics.AvailableSlots},
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return nil, err
	}

	nodes := [][]any{{"Node ID", "URI", "Availability", "Slots", "Active Sessions", "Available Slots"}}
	for _, n := range view.Nodes {
		active := 0
		for _, s := range n.Slots {
			if !s.Available() {
				active++
			}
		}
		nodes = append(nodes, []any{n.ID, n.URI, string(n.Availability), len(n.Slots), active, len(n.Slots) - active})
	}
	if err := writeRows(f, nodesSheet, nodes); err != nil {
		return nil, err
	}

	sessions := [][]any{{"Session ID", "Browser", "Version", "Platform", "Node ID", "Node URI", "Start Time", "Capabilities"}}
	for _, s := range view.Sessions {
		sessions = append(sessions, []any{
			s.SessionID,
			capability(s.Capabilities, "browserName"),
			capability(s.Capabilities, "browserVersion"),
			capability(s.Capabilities, "platformName"),
			s.NodeID,
			s.NodeURI,
			s.StartTime,
			flatten(s.Capabilities),
		})
	}
	if err := writeRows(f, sessionsSheet, sessions); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func capability(c models.Capabilities, key string) string {
	v, ok := c[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// flatten renders capabilities as sorted key=value pairs.
func flatten(c models.Capabilities) string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, c[k]))
	}
	return strings.Join(parts, "; ")
}
