/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package export renders analysis output as files the caller can apply
// by hand: an iCal draft of proposed blocks and the raw report
// envelope. Nothing here writes back to any calendar.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/friendsincode/verdandi_time/internal/models"
)

// WriteProposalsICal renders proposed events as a VCALENDAR draft. UIDs
// are deterministic (goal id + start time), so re-exporting the same
// plan yields the same calendar apart from DTSTAMP.
func WriteProposalsICal(w io.Writer, calendarName string, proposals []models.ProposedEvent) error {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//Verdandi Time//Planner Export//EN\r\n")
	if calendarName != "" {
		fmt.Fprintf(&b, "X-WR-CALNAME:%s\r\n", escapeICalText(calendarName))
	}
	b.WriteString("CALSCALE:GREGORIAN\r\n")
	b.WriteString("METHOD:PUBLISH\r\n")

	stamp := formatICalTime(time.Now())
	for _, p := range proposals {
		b.WriteString("BEGIN:VEVENT\r\n")
		fmt.Fprintf(&b, "UID:%s-%s@verdandi\r\n", p.GoalID, p.Start.UTC().Format("20060102T150405Z"))
		fmt.Fprintf(&b, "DTSTAMP:%s\r\n", stamp)
		fmt.Fprintf(&b, "DTSTART:%s\r\n", formatICalTime(p.Start))
		fmt.Fprintf(&b, "DTEND:%s\r\n", formatICalTime(p.End))
		fmt.Fprintf(&b, "SUMMARY:%s\r\n", escapeICalText(p.Summary))
		if p.ColorID != "" {
			fmt.Fprintf(&b, "CATEGORIES:%s\r\n", escapeICalText(p.ColorID))
		}
		if p.GoalID != "" {
			fmt.Fprintf(&b, "X-VERDANDI-GOAL:%s\r\n", escapeICalText(p.GoalID))
		}
		b.WriteString("END:VEVENT\r\n")
	}

	b.WriteString("END:VCALENDAR\r\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// ProposalsFilename suggests a download-style name for an iCal draft.
func ProposalsFilename(name string, start, end time.Time) string {
	return fmt.Sprintf("%s-plan-%s-to-%s.ics",
		slugify(name),
		start.Format("2006-01-02"),
		end.Format("2006-01-02"))
}

// WriteReportJSON emits the report envelope as indented JSON.
func WriteReportJSON(w io.Writer, report *models.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Helper functions

func formatICalTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func escapeICalText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

func slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}
	return result.String()
}
