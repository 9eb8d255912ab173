/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "time"

// Event is one calendar event instance inside an analysis window.
// Recurring series arrive already expanded; Recurring and SeriesID only
// record provenance. Events are immutable snapshots: nothing in this
// module mutates or persists them.
type Event struct {
	ID              string    `json:"id"`
	Account         string    `json:"account,omitempty"`
	Calendar        string    `json:"calendarId,omitempty"`
	Summary         string    `json:"summary"`
	Description     string    `json:"description,omitempty"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"durationMinutes,omitempty"`
	ColorID         string    `json:"colorId,omitempty"`
	AllDay          bool      `json:"isAllDay,omitempty"`
	Recurring       bool      `json:"isRecurring,omitempty"`
	SeriesID        string    `json:"seriesId,omitempty"`
}

// Duration returns the event length, preferring the explicit minute count
// when the snapshot carries one.
func (e Event) Duration() time.Duration {
	if e.DurationMinutes > 0 {
		return time.Duration(e.DurationMinutes) * time.Minute
	}
	return e.End.Sub(e.Start)
}

// TimeGap is a contiguous unoccupied interval inside an analysis window.
type TimeGap struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"durationMinutes"`
}
