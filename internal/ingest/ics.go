/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/friendsincode/verdandi_time/internal/models"
	"github.com/rs/zerolog"
	"github.com/teambition/rrule-go"
)

// maxOccurrencesPerSeries caps RRULE expansion so a runaway rule cannot
// flood the snapshot.
const maxOccurrencesPerSeries = 1000

// ICSOptions labels loaded events and bounds recurrence expansion.
// Window bounds are required for unbounded RRULEs; when zero, expansion
// covers one year from the series start.
type ICSOptions struct {
	Account     string
	Calendar    string
	WindowStart time.Time
	WindowEnd   time.Time
	Location    *time.Location
}

type parsedVEvent struct {
	uid         string
	summary     string
	description string
	start       time.Time
	end         time.Time
	allDay      bool
	rawRRule    string
	exDates     []time.Time
}

// LoadEventsICS parses a local .ics export into events. Recurring
// series are expanded into concrete instances inside the window, each
// carrying the series UID; individual broken VEVENTs are skipped with
// a warning so one bad entry does not sink the snapshot.
func LoadEventsICS(path string, opts ICSOptions, logger zerolog.Logger) ([]models.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ics snapshot: %w", err)
	}
	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse ics snapshot %s: %w", path, err)
	}

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	var events []models.Event
	for i, ve := range cal.Events() {
		parsed, err := parseVEvent(ve, loc)
		if err != nil {
			logger.Warn().Err(err).Int("index", i).Msg("skipping unparseable vevent")
			continue
		}
		if parsed.uid == "" {
			parsed.uid = fmt.Sprintf("ics-%d", i+1)
		}
		events = append(events, expandVEvent(parsed, opts, loc, logger)...)
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].Start.Equal(events[j].Start) {
			return events[i].Start.Before(events[j].Start)
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

func parseVEvent(ve *ical.VEvent, loc *time.Location) (parsedVEvent, error) {
	var out parsedVEvent

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		out.uid = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.description = p.Value
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil || dtStart.Value == "" {
		return out, errors.New("missing DTSTART")
	}
	out.allDay = isDateOnly(dtStart)

	if out.allDay {
		day, err := parseICSDate(dtStart.Value, loc)
		if err != nil {
			return out, fmt.Errorf("bad all-day DTSTART %q: %w", dtStart.Value, err)
		}
		out.start = day
		out.end = day.Add(24 * time.Hour)
		if dtEnd := ve.GetProperty(ical.ComponentPropertyDtEnd); dtEnd != nil {
			if endDay, err := parseICSDate(dtEnd.Value, loc); err == nil && endDay.After(day) {
				out.end = endDay
			}
		}
	} else {
		start, err := ve.GetStartAt()
		if err != nil {
			return out, fmt.Errorf("bad DTSTART: %w", err)
		}
		end, err := ve.GetEndAt()
		if err != nil {
			return out, fmt.Errorf("bad DTEND: %w", err)
		}
		if !start.Before(end) {
			return out, fmt.Errorf("start %v is not before end %v", start, end)
		}
		out.start = start
		out.end = end
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.rawRRule = p.Value
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part, out.start.Location()); err == nil {
				out.exDates = append(out.exDates, t)
			}
		}
	}

	return out, nil
}

func expandVEvent(ev parsedVEvent, opts ICSOptions, loc *time.Location, logger zerolog.Logger) []models.Event {
	if ev.rawRRule == "" {
		if !inWindow(ev.start, ev.end, opts) {
			return nil
		}
		return []models.Event{buildEvent(ev, ev.uid, ev.start, ev.end, false, "", opts)}
	}

	r, err := rrule.StrToRRule(ev.rawRRule)
	if err != nil {
		logger.Warn().Err(err).Str("uid", ev.uid).Str("rrule", ev.rawRRule).
			Msg("unparseable RRULE, keeping only the base occurrence")
		if !inWindow(ev.start, ev.end, opts) {
			return nil
		}
		return []models.Event{buildEvent(ev, ev.uid, ev.start, ev.end, false, "", opts)}
	}
	r.DTStart(ev.start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.exDates {
		set.ExDate(ex.In(ev.start.Location()))
	}

	rangeStart, rangeEnd := opts.WindowStart, opts.WindowEnd
	if rangeStart.IsZero() && rangeEnd.IsZero() {
		rangeStart = ev.start
		rangeEnd = ev.start.AddDate(1, 0, 0)
	}
	starts := set.Between(rangeStart.In(ev.start.Location()), rangeEnd.In(ev.start.Location()), true)
	if len(starts) > maxOccurrencesPerSeries {
		logger.Warn().Str("uid", ev.uid).Int("cap", maxOccurrencesPerSeries).
			Msg("recurring series truncated at the occurrence cap")
		starts = starts[:maxOccurrencesPerSeries]
	}

	duration := ev.end.Sub(ev.start)
	out := make([]models.Event, 0, len(starts))
	for _, occStart := range starts {
		var occEnd time.Time
		if ev.allDay {
			occStart = time.Date(occStart.Year(), occStart.Month(), occStart.Day(), 0, 0, 0, 0, loc)
			occEnd = occStart.Add(duration)
		} else {
			occEnd = occStart.Add(duration)
		}
		id := fmt.Sprintf("%s@%s", ev.uid, occStart.UTC().Format("20060102T150405Z"))
		out = append(out, buildEvent(ev, id, occStart, occEnd, true, ev.uid, opts))
	}
	return out
}

func buildEvent(ev parsedVEvent, id string, start, end time.Time, recurring bool, seriesID string, opts ICSOptions) models.Event {
	return models.Event{
		ID:              id,
		Account:         opts.Account,
		Calendar:        opts.Calendar,
		Summary:         ev.summary,
		Description:     ev.description,
		Start:           start,
		End:             end,
		DurationMinutes: int(end.Sub(start) / time.Minute),
		AllDay:          ev.allDay,
		Recurring:       recurring,
		SeriesID:        seriesID,
	}
}

func inWindow(start, end time.Time, opts ICSOptions) bool {
	if opts.WindowStart.IsZero() && opts.WindowEnd.IsZero() {
		return true
	}
	return start.Before(opts.WindowEnd) && opts.WindowStart.Before(end)
}

// isDateOnly detects VALUE=DATE starts, the all-day marker in practice.
func isDateOnly(prop *ical.IANAProperty) bool {
	if params := prop.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(prop.Value, "T")
}

func parseICSDate(v string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("20060102", strings.TrimSpace(v), loc)
}

// parseICSTime handles the UTC, local, and date-only EXDATE forms.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}
	if strings.Contains(v, "T") {
		return time.ParseInLocation("20060102T150405", v, loc)
	}
	return time.ParseInLocation("20060102", v, loc)
}
