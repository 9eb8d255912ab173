/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "time"

// CalendarMinutes aggregates raw and effective scheduled time for one
// calendar. Effective minutes never double-count overlapping events.
type CalendarMinutes struct {
	Calendar         string `json:"calendarId"`
	EventCount       int    `json:"eventCount"`
	RawMinutes       int    `json:"rawMinutes"`
	EffectiveMinutes int    `json:"effectiveMinutes"`
}

// Report is the full analysis envelope produced by one analyzer run.
// Everything below the envelope fields is deterministic for a given
// input snapshot; only ID and GeneratedAt vary between runs.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"`
	WindowStart time.Time `json:"windowStart"`
	WindowEnd   time.Time `json:"windowEnd"`
	Timezone    string    `json:"timezone,omitempty"`

	EventCount    int                         `json:"eventCount"`
	AllDayCount   int                         `json:"allDayCount"`
	Accounting    []CalendarMinutes           `json:"accounting,omitempty"`
	Gaps          []TimeGap                   `json:"gaps"`
	OverlapGroups []OverlapGroup              `json:"overlapGroups"`
	FlexSlots     []FlexSlot                  `json:"flexSlots"`
	Goals         []Goal                      `json:"goals,omitempty"`
	Proposals     []ProposedEvent             `json:"proposals,omitempty"`
	Score         *OptimizationScore          `json:"score,omitempty"`
	Coverage      *CoverageReport             `json:"coverage,omitempty"`
	Lifecycle     []CoverageLifecycleProposal `json:"lifecycle,omitempty"`
}
