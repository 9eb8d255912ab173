/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package ingest loads event snapshots from local files: JSON arrays
// exported by other tooling and plain .ics exports. Recurrence is
// expanded here, bounded to the analysis window, so the engines only
// ever see concrete events.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/friendsincode/verdandi_time/internal/models"
	"github.com/rs/zerolog"
)

// LoadEventsJSON reads a JSON array of events. Records are repaired
// where possible: a missing id is defaulted from the position and a
// missing duration is derived from the times. A timed event whose start
// is not before its end is skipped with a warning, never guessed at.
func LoadEventsJSON(path string, logger zerolog.Logger) ([]models.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events snapshot: %w", err)
	}
	var raw []models.Event
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse events snapshot %s: %w", path, err)
	}

	events := make([]models.Event, 0, len(raw))
	for i, ev := range raw {
		if ev.ID == "" {
			ev.ID = fmt.Sprintf("event-%d", i+1)
		}
		if ev.Start.IsZero() {
			logger.Warn().Str("event", ev.ID).Msg("event has no start time, skipping")
			continue
		}
		if ev.AllDay {
			if !ev.Start.Before(ev.End) {
				ev.End = ev.Start.Add(24 * time.Hour)
			}
		} else if !ev.Start.Before(ev.End) {
			logger.Warn().Str("event", ev.ID).Time("start", ev.Start).Time("end", ev.End).
				Msg("event start is not before its end, skipping")
			continue
		}
		if ev.DurationMinutes == 0 {
			ev.DurationMinutes = int(ev.End.Sub(ev.Start) / time.Minute)
		}
		events = append(events, ev)
	}
	return events, nil
}
