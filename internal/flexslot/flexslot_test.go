/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package flexslot

import (
	"testing"
	"time"

	"github.com/friendsincode/verdandi_time/internal/models"
)

func TestCalculateDayGapsInsideWakingHours(t *testing.T) {
	events := []models.Event{
		ev("standup", day(2, 9, 0), day(2, 10, 0)),
		ev("lunch", day(2, 13, 0), day(2, 14, 0)),
	}
	cfg := Config{Waking: models.HourRange{StartHour: 8, EndHour: 22}}

	slots := Calculate(events, cfg)

	if len(slots) != 3 {
		t.Fatalf("Calculate() = %d slots, want 3", len(slots))
	}
	want := []struct {
		start, end time.Time
		minutes    int
	}{
		{day(2, 8, 0), day(2, 9, 0), 60},
		{day(2, 10, 0), day(2, 13, 0), 180},
		{day(2, 14, 0), day(2, 22, 0), 480},
	}
	for i, s := range slots {
		if !s.Start.Equal(want[i].start) || !s.End.Equal(want[i].end) || s.DurationMinutes != want[i].minutes {
			t.Errorf("slot %d = [%v, %v] %dm, want [%v, %v] %dm",
				i, s.Start, s.End, s.DurationMinutes, want[i].start, want[i].end, want[i].minutes)
		}
	}
}

func TestCalculateFiltersShortGaps(t *testing.T) {
	events := []models.Event{
		ev("standup", day(2, 9, 0), day(2, 10, 0)),
		ev("lunch", day(2, 13, 0), day(2, 14, 0)),
	}
	cfg := Config{Waking: models.HourRange{StartHour: 8, EndHour: 22}, MinGapMinutes: 240}

	slots := Calculate(events, cfg)

	if len(slots) != 1 {
		t.Fatalf("Calculate() = %d slots, want 1", len(slots))
	}
	if slots[0].DurationMinutes != 480 {
		t.Errorf("slot duration = %d, want 480", slots[0].DurationMinutes)
	}
}

func TestCalculateEmptyDaysYieldNoSlots(t *testing.T) {
	cfg := Config{Waking: models.HourRange{StartHour: 8, EndHour: 22}}

	if slots := Calculate(nil, cfg); len(slots) != 0 {
		t.Errorf("Calculate() with no events = %d slots, want 0", len(slots))
	}
}

func TestCalculateSkipsWeekends(t *testing.T) {
	events := []models.Event{
		ev("friday", day(6, 9, 0), day(6, 10, 0)),
		ev("saturday", day(7, 9, 0), day(7, 10, 0)),
	}
	cfg := Config{
		Waking:       models.HourRange{StartHour: 8, EndHour: 12},
		SkipWeekends: true,
	}

	slots := Calculate(events, cfg)

	for _, s := range slots {
		if wd := s.Start.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("slot on %v, want weekends skipped", wd)
		}
	}
	if len(slots) != 2 {
		t.Fatalf("Calculate() = %d slots, want 2 from Friday only", len(slots))
	}
}

func TestCalculateAllDayEventsCarryNoDates(t *testing.T) {
	allDay := ev("conf", day(2, 0, 0), day(3, 0, 0))
	allDay.AllDay = true
	cfg := Config{Waking: models.HourRange{StartHour: 8, EndHour: 22}}

	if slots := Calculate([]models.Event{allDay}, cfg); len(slots) != 0 {
		t.Errorf("Calculate() = %d slots, want 0 for an all-day-only date", len(slots))
	}
}

func TestCalculateSortsAcrossDates(t *testing.T) {
	events := []models.Event{
		ev("tue", day(3, 9, 0), day(3, 10, 0)),
		ev("mon", day(2, 9, 0), day(2, 10, 0)),
	}
	cfg := Config{Waking: models.HourRange{StartHour: 9, EndHour: 11}}

	slots := Calculate(events, cfg)

	for i := 1; i < len(slots); i++ {
		if slots[i].Start.Before(slots[i-1].Start) {
			t.Fatalf("slots out of order: %v before %v", slots[i].Start, slots[i-1].Start)
		}
	}
	if len(slots) != 2 {
		t.Fatalf("Calculate() = %d slots, want 2", len(slots))
	}
	if slots[0].Start.Day() != 2 || slots[1].Start.Day() != 3 {
		t.Errorf("slots = %v then %v, want Monday before Tuesday", slots[0].Start, slots[1].Start)
	}
}

func TestCalculateUsesScheduleOverride(t *testing.T) {
	events := []models.Event{
		ev("standup", day(2, 9, 0), day(2, 10, 0)),
	}
	cfg := Config{
		Waking: models.HourRange{StartHour: 8, EndHour: 22},
		Schedule: &models.WeeklySchedule{
			Weekday: models.HourRange{StartHour: 8, EndHour: 22},
			Weekend: models.HourRange{StartHour: 10, EndHour: 20},
			Overrides: map[string]models.HourRange{
				"2026-03-02": {StartHour: 9, EndHour: 12},
			},
		},
	}

	slots := Calculate(events, cfg)

	if len(slots) != 1 {
		t.Fatalf("Calculate() = %d slots, want 1", len(slots))
	}
	if !slots[0].Start.Equal(day(2, 10, 0)) || !slots[0].End.Equal(day(2, 12, 0)) {
		t.Errorf("slot = [%v, %v], want [10:00, 12:00] from the override window", slots[0].Start, slots[0].End)
	}
}

func TestCalculateScheduleBlockedDayYieldsNothing(t *testing.T) {
	events := []models.Event{
		ev("standup", day(2, 9, 0), day(2, 10, 0)),
	}
	cfg := Config{
		Schedule: &models.WeeklySchedule{
			Weekday: models.HourRange{StartHour: 8, EndHour: 22},
			Overrides: map[string]models.HourRange{
				"2026-03-02": {},
			},
		},
	}

	if slots := Calculate(events, cfg); len(slots) != 0 {
		t.Errorf("Calculate() = %d slots on a blocked day, want 0", len(slots))
	}
}

// day returns a clock time on the given March 2026 day; the 2nd is a
// Monday.
func day(d, hour, min int) time.Time {
	return time.Date(2026, time.March, d, hour, min, 0, 0, time.UTC)
}

func ev(id string, start, end time.Time) models.Event {
	return models.Event{
		ID:              id,
		Summary:         id,
		Start:           start,
		End:             end,
		DurationMinutes: int(end.Sub(start) / time.Minute),
	}
}
