/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package schedule

import (
	"testing"
	"time"

	"github.com/friendsincode/verdandi_time/internal/models"
)

func testSchedule() *models.WeeklySchedule {
	return &models.WeeklySchedule{
		Weekday: models.HourRange{StartHour: 8, EndHour: 22},
		Weekend: models.HourRange{StartHour: 10, EndHour: 20},
		Overrides: map[string]models.HourRange{
			"2026-03-04": {StartHour: 6, EndHour: 12},
			"2026-03-05": {},
		},
		Holidays: []string{"2026-03-06"},
	}
}

func TestResolveWeekdayClass(t *testing.T) {
	// 2026-03-02 is a Monday.
	r, ok := Resolve(testSchedule(), time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))

	if !ok {
		t.Fatal("Resolve() ok = false, want true")
	}
	if r.StartHour != 8 || r.EndHour != 22 {
		t.Errorf("Resolve() = %+v, want weekday 8-22", r)
	}
}

func TestResolveWeekendClass(t *testing.T) {
	// 2026-03-07 is a Saturday.
	r, ok := Resolve(testSchedule(), time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC))

	if !ok {
		t.Fatal("Resolve() ok = false, want true")
	}
	if r.StartHour != 10 || r.EndHour != 20 {
		t.Errorf("Resolve() = %+v, want weekend 10-20", r)
	}
}

func TestResolveOverrideWinsOverWeekdayClass(t *testing.T) {
	r, ok := Resolve(testSchedule(), time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC))

	if !ok {
		t.Fatal("Resolve() ok = false, want true")
	}
	if r.StartHour != 6 || r.EndHour != 12 {
		t.Errorf("Resolve() = %+v, want override 6-12", r)
	}
}

func TestResolveEmptyOverrideBlocksTheDay(t *testing.T) {
	if _, ok := Resolve(testSchedule(), time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)); ok {
		t.Error("Resolve() ok = true for an empty override, want false")
	}
}

func TestResolveHolidayUsesWeekendRange(t *testing.T) {
	// 2026-03-06 is a Friday but listed as a holiday.
	r, ok := Resolve(testSchedule(), time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC))

	if !ok {
		t.Fatal("Resolve() ok = false, want true")
	}
	if r.StartHour != 10 || r.EndHour != 20 {
		t.Errorf("Resolve() = %+v, want weekend 10-20", r)
	}
}

func TestResolveNilSchedule(t *testing.T) {
	if _, ok := Resolve(nil, time.Now()); ok {
		t.Error("Resolve(nil) ok = true, want false")
	}
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"monday", time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), false},
		{"friday", time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC), false},
		{"saturday", time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC), true},
		{"sunday", time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWeekend(tt.date); got != tt.want {
				t.Errorf("IsWeekend(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
