/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package schedule

import (
	"time"

	"github.com/friendsincode/verdandi_time/internal/models"
)

// Resolve returns the waking-hour range for a date under a weekly
// schedule. A per-date override wins, then holidays fall back to the
// weekend range, then the weekday class applies. The second return is
// false when the resolved range is empty and nothing can be scheduled
// that day.
func Resolve(ws *models.WeeklySchedule, date time.Time) (models.HourRange, bool) {
	if ws == nil {
		return models.HourRange{}, false
	}
	key := date.Format("2006-01-02")
	if r, ok := ws.Overrides[key]; ok {
		return r, !r.Empty()
	}
	for _, holiday := range ws.Holidays {
		if holiday == key {
			return ws.Weekend, !ws.Weekend.Empty()
		}
	}
	if IsWeekend(date) {
		return ws.Weekend, !ws.Weekend.Empty()
	}
	return ws.Weekday, !ws.Weekday.Empty()
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
