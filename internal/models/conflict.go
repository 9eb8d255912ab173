/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "time"

// OverlapGroup is a maximal cluster of transitively overlapping timed
// events, i.e. one double-booking incident. Events are sorted by start;
// the span runs from the earliest start to the latest end of the members.
type OverlapGroup struct {
	ID                  string                 `json:"id"`
	Start               time.Time              `json:"start"`
	End                 time.Time              `json:"end"`
	Events              []Event                `json:"events"`
	SuggestedAttendance []AttendanceSuggestion `json:"suggestedAttendance,omitempty"`
}

// AttendanceSuggestion is an advisory effective-minutes estimate for one
// member of an overlap group when the owner splits attention across the
// cluster. Populated by callers, never by the grouper itself.
type AttendanceSuggestion struct {
	EventID string  `json:"eventId"`
	Minutes float64 `json:"minutes"`
}
