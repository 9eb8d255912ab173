/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "time"

// GoalKind discriminates the two goal variants.
type GoalKind string

const (
	GoalKindTime    GoalKind = "time"    // recurring time budget
	GoalKindOutcome GoalKind = "outcome" // deliverable with an estimate
)

// DayPart is a coarse time-of-day bucket used as a soft placement
// preference.
type DayPart string

const (
	DayPartMorning   DayPart = "morning"   // 06:00-12:00
	DayPartAfternoon DayPart = "afternoon" // 12:00-17:00
	DayPartEvening   DayPart = "evening"   // 17:00-22:00
)

// DayPartForHour buckets an hour of day. Hours outside every bucket
// return the empty day part.
func DayPartForHour(hour int) DayPart {
	switch {
	case hour >= 6 && hour < 12:
		return DayPartMorning
	case hour >= 12 && hour < 17:
		return DayPartAfternoon
	case hour >= 17 && hour < 22:
		return DayPartEvening
	}
	return ""
}

// Adjacent reports whether two distinct day parts touch on the clock
// (morning/afternoon and afternoon/evening do, morning/evening do not).
func (p DayPart) Adjacent(q DayPart) bool {
	if p == "" || q == "" || p == q {
		return false
	}
	return p == DayPartAfternoon || q == DayPartAfternoon
}

// Goal is a tagged variant; Kind selects which fields carry meaning. Time
// goals budget TotalMinutes of recurring activity under optional session
// constraints. Outcome goals describe a deliverable with an estimate and
// an optional deadline. Lower Priority values rank higher.
type Goal struct {
	Kind              GoalKind `json:"kind" yaml:"kind"`
	ID                string   `json:"id" yaml:"id"`
	Name              string   `json:"name" yaml:"name"`
	TotalMinutes      int      `json:"totalMinutes,omitempty" yaml:"totalMinutes,omitempty"`
	MinSessionMinutes *int     `json:"minSessionMinutes,omitempty" yaml:"minSessionMinutes,omitempty"`
	MaxSessionMinutes *int     `json:"maxSessionMinutes,omitempty" yaml:"maxSessionMinutes,omitempty"`
	SessionsPerWeek   *int     `json:"sessionsPerWeek,omitempty" yaml:"sessionsPerWeek,omitempty"`
	Preference        DayPart  `json:"preference,omitempty" yaml:"preference,omitempty"`
	Category          string   `json:"category,omitempty" yaml:"category,omitempty"`
	Priority          int      `json:"priority,omitempty" yaml:"priority,omitempty"`
	Recurring         bool     `json:"recurring,omitempty" yaml:"recurring,omitempty"`

	Description      string     `json:"description,omitempty" yaml:"description,omitempty"`
	EstimatedMinutes int        `json:"estimatedMinutes,omitempty" yaml:"estimatedMinutes,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty" yaml:"deadline,omitempty"`
}

// RequestedMinutes is the total the allocator should try to place for
// this goal.
func (g Goal) RequestedMinutes() int {
	if g.Kind == GoalKindOutcome {
		return g.EstimatedMinutes
	}
	return g.TotalMinutes
}

// ProposedEvent is a draft block suggested for a goal. Proposals are
// transient output; whether to apply them to a calendar is the caller's
// decision.
type ProposedEvent struct {
	Summary         string    `json:"summary"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"durationMinutes"`
	ColorID         string    `json:"colorId,omitempty"`
	GoalID          string    `json:"goalId"`
}

// OptimizationScore summarizes one allocation pass.
type OptimizationScore struct {
	GoalAchievement     float64 `json:"goalAchievement"`
	AverageBlockMinutes float64 `json:"averageBlockMinutes"`
	PreferenceAlignment float64 `json:"preferenceAlignment"`
}
