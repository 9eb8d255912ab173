/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "time"

// FlexSlot is a free gap clipped to a day's waking window and long enough
// to host allocated goal time.
type FlexSlot struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"durationMinutes"`
}

// HourRange is a same-day [StartHour, EndHour) range in whole hours of
// local time.
type HourRange struct {
	StartHour int `json:"startHour" yaml:"startHour"`
	EndHour   int `json:"endHour" yaml:"endHour"`
}

// Empty reports whether the range contains no usable time.
func (r HourRange) Empty() bool { return r.EndHour <= r.StartHour }

// WeeklySchedule describes waking hours per weekday class plus per-date
// exceptions. Override keys and holiday entries use YYYY-MM-DD in the
// schedule's local time; holidays fall back to the weekend range.
type WeeklySchedule struct {
	Weekday   HourRange            `json:"weekday" yaml:"weekday"`
	Weekend   HourRange            `json:"weekend" yaml:"weekend"`
	Overrides map[string]HourRange `json:"overrides,omitempty" yaml:"overrides,omitempty"`
	Holidays  []string             `json:"holidays,omitempty" yaml:"holidays,omitempty"`
}
