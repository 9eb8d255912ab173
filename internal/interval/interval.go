/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package interval implements the time-interval algebra the rest of the
// engine builds on: merging occupied spans, free-gap computation inside a
// bounded window, and de-duplicated occupancy totals.
package interval

import (
	"sort"
	"time"

	"github.com/friendsincode/verdandi_time/internal/models"
)

// Span is a half-open [Start, End) time interval.
type Span struct {
	Start time.Time
	End   time.Time
}

// Minutes returns the span width in whole minutes.
func (s Span) Minutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}

// SpansOf extracts the spans of all timed events. All-day events carry no
// clock occupancy and are skipped.
func SpansOf(events []models.Event) []Span {
	spans := make([]Span, 0, len(events))
	for _, ev := range events {
		if ev.AllDay {
			continue
		}
		spans = append(spans, Span{Start: ev.Start, End: ev.End})
	}
	return spans
}

// Merge sorts spans by start and coalesces every pair that overlaps or
// touches. Touching spans merge here; conflict grouping deliberately uses
// a stricter predicate, so the two must never share one.
func Merge(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}
	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []Span{sorted[0]}
	for _, next := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !next.Start.After(last.End) {
			if next.End.After(last.End) {
				last.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}
	return merged
}

// Clip intersects a span with [windowStart, windowEnd). The second return
// is false when the intersection is empty.
func Clip(s Span, windowStart, windowEnd time.Time) (Span, bool) {
	if s.Start.Before(windowStart) {
		s.Start = windowStart
	}
	if s.End.After(windowEnd) {
		s.End = windowEnd
	}
	if !s.End.After(s.Start) {
		return Span{}, false
	}
	return s, true
}

// Gaps returns the free intervals of [windowStart, windowEnd) left by the
// timed events intersecting it: one gap before the first occupied span,
// one between each consecutive pair, one after the last, each only when
// it has positive width. A window nothing intersects is one whole-window
// gap; a zero-width window has none.
func Gaps(events []models.Event, windowStart, windowEnd time.Time) []models.TimeGap {
	if !windowEnd.After(windowStart) {
		return nil
	}

	var clipped []Span
	for _, ev := range events {
		if ev.AllDay {
			continue
		}
		if s, ok := Clip(Span{Start: ev.Start, End: ev.End}, windowStart, windowEnd); ok {
			clipped = append(clipped, s)
		}
	}

	var gaps []models.TimeGap
	cursor := windowStart
	for _, s := range Merge(clipped) {
		gaps = appendGap(gaps, cursor, s.Start)
		cursor = s.End
	}
	return appendGap(gaps, cursor, windowEnd)
}

// EffectiveScheduledMinutes sums merged timed-event spans, ignoring
// window bounds, so overlapping bookings count once.
func EffectiveScheduledMinutes(events []models.Event) int {
	total := 0
	for _, s := range Merge(SpansOf(events)) {
		total += s.Minutes()
	}
	return total
}

func appendGap(gaps []models.TimeGap, start, end time.Time) []models.TimeGap {
	if !end.After(start) {
		return gaps
	}
	return append(gaps, models.TimeGap{
		Start:           start,
		End:             end,
		DurationMinutes: int(end.Sub(start) / time.Minute),
	})
}
