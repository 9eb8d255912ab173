/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package flexslot

import (
	"sort"
	"time"

	"github.com/friendsincode/verdandi_time/internal/interval"
	"github.com/friendsincode/verdandi_time/internal/models"
	"github.com/friendsincode/verdandi_time/internal/schedule"
)

// Config bounds slot generation.
type Config struct {
	Waking        models.HourRange
	MinGapMinutes int
	SkipWeekends  bool
	Location      *time.Location

	// Schedule, when set, resolves each date's window (including
	// overrides and holidays) instead of the fixed Waking range.
	Schedule *models.WeeklySchedule
}

// Calculate turns each day's free gaps inside waking hours into
// allocation slots, sorted by start across dates. Only dates that carry
// timed events are considered; an empty day produces no slots.
func Calculate(events []models.Event, cfg Config) []models.FlexSlot {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	byDate := make(map[string][]models.Event)
	for _, ev := range events {
		if ev.AllDay {
			continue
		}
		key := ev.Start.In(loc).Format("2006-01-02")
		byDate[key] = append(byDate[key], ev)
	}

	keys := make([]string, 0, len(byDate))
	for key := range byDate {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var slots []models.FlexSlot
	for _, key := range keys {
		day, _ := time.ParseInLocation("2006-01-02", key, loc)
		if cfg.SkipWeekends && schedule.IsWeekend(day) {
			continue
		}
		hours, ok := dayHours(cfg, day)
		if !ok {
			continue
		}
		windowStart := time.Date(day.Year(), day.Month(), day.Day(), hours.StartHour, 0, 0, 0, loc)
		windowEnd := time.Date(day.Year(), day.Month(), day.Day(), hours.EndHour, 0, 0, 0, loc)
		for _, gap := range interval.Gaps(byDate[key], windowStart, windowEnd) {
			if gap.DurationMinutes < cfg.MinGapMinutes {
				continue
			}
			slots = append(slots, models.FlexSlot(gap))
		}
	}
	return slots
}

func dayHours(cfg Config, day time.Time) (models.HourRange, bool) {
	if cfg.Schedule != nil {
		return schedule.Resolve(cfg.Schedule, day)
	}
	return cfg.Waking, !cfg.Waking.Empty()
}
