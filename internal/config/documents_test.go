/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/friendsincode/verdandi_time/internal/coverage"
	"github.com/rs/zerolog"
)

func TestLoadScheduleDocYAML(t *testing.T) {
	path := writeDoc(t, "schedule.yaml", `
weekday:
  startHour: 9
  endHour: 18
weekend:
  startHour: 10
  endHour: 16
overrides:
  "2026-03-04":
    startHour: 13
    endHour: 20
holidays:
  - "2026-03-06"
`)

	doc := LoadScheduleDoc(path, zerolog.Nop())

	if doc == nil {
		t.Fatal("LoadScheduleDoc() = nil, want a schedule")
	}
	if doc.Weekday.StartHour != 9 || doc.Weekday.EndHour != 18 {
		t.Errorf("weekday = %+v, want 9..18", doc.Weekday)
	}
	if got := doc.Overrides["2026-03-04"]; got.StartHour != 13 || got.EndHour != 20 {
		t.Errorf("override = %+v, want 13..20", got)
	}
	if len(doc.Holidays) != 1 || doc.Holidays[0] != "2026-03-06" {
		t.Errorf("holidays = %v, want [2026-03-06]", doc.Holidays)
	}
}

func TestLoadScheduleDocAcceptsJSON(t *testing.T) {
	path := writeDoc(t, "schedule.json",
		`{"weekday":{"startHour":8,"endHour":17},"weekend":{"startHour":9,"endHour":12}}`)

	doc := LoadScheduleDoc(path, zerolog.Nop())

	if doc == nil || doc.Weekday.EndHour != 17 || doc.Weekend.StartHour != 9 {
		t.Fatalf("LoadScheduleDoc() = %+v, want the JSON document parsed", doc)
	}
}

func TestLoadScheduleDocDegrades(t *testing.T) {
	if doc := LoadScheduleDoc("", zerolog.Nop()); doc != nil {
		t.Errorf("empty path: doc = %+v, want nil", doc)
	}
	if doc := LoadScheduleDoc(filepath.Join(t.TempDir(), "missing.yaml"), zerolog.Nop()); doc != nil {
		t.Errorf("missing file: doc = %+v, want nil", doc)
	}
	bad := writeDoc(t, "bad.yaml", "weekday: [not a map")
	if doc := LoadScheduleDoc(bad, zerolog.Nop()); doc != nil {
		t.Errorf("malformed file: doc = %+v, want nil", doc)
	}
}

func TestLoadGoalsDoc(t *testing.T) {
	path := writeDoc(t, "goals.yaml", `
- kind: time
  id: guitar
  name: Guitar
  totalMinutes: 135
  minSessionMinutes: 45
  sessionsPerWeek: 3
  preference: evening
  recurring: true
- kind: outcome
  id: launch-plan
  name: Launch plan
  estimatedMinutes: 600
`)

	goals := LoadGoalsDoc(path, zerolog.Nop())

	if len(goals) != 2 {
		t.Fatalf("LoadGoalsDoc() = %d goals, want 2", len(goals))
	}
	g := goals[0]
	if g.TotalMinutes != 135 || g.MinSessionMinutes == nil || *g.MinSessionMinutes != 45 {
		t.Errorf("goal = %+v, want 135 total with 45-minute sessions", g)
	}
	if goals[1].RequestedMinutes() != 600 {
		t.Errorf("outcome requested = %d, want 600", goals[1].RequestedMinutes())
	}
}

func TestLoadGoalsDocDegrades(t *testing.T) {
	if goals := LoadGoalsDoc(filepath.Join(t.TempDir(), "missing.yaml"), zerolog.Nop()); goals != nil {
		t.Errorf("missing file: goals = %v, want nil", goals)
	}
}

func TestLoadRulesDoc(t *testing.T) {
	path := writeDoc(t, "rules.yaml", `
rules:
  - id: sitter
    name: Evening care coverage
    trigger:
      sourceCalendars: [family]
      summaryPatterns: ["shift"]
    requirement:
      coverageSummaryPatterns: ["sitter"]
      coverageSearchCalendars: [care]
      createTarget:
        account: home
        calendarId: care
      startOffsetMinutes: -60
      endOffsetMinutes: 60
`)

	doc, rules, err := LoadRulesDoc(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadRulesDoc() error = %v", err)
	}
	if len(doc.Rules) != 1 || doc.Rules[0].ID != "sitter" {
		t.Fatalf("doc rules = %+v, want the sitter rule", doc.Rules)
	}
	if doc.Rules[0].Requirement.StartOffsetMinutes != -60 {
		t.Errorf("startOffsetMinutes = %d, want -60", doc.Rules[0].Requirement.StartOffsetMinutes)
	}
	if rules == nil {
		t.Fatal("LoadRulesDoc() ruleset = nil, want compiled rules")
	}
}

func TestLoadRulesDocBadPatternFails(t *testing.T) {
	path := writeDoc(t, "rules.yaml", `
rules:
  - id: broken
    name: Broken
    trigger:
      sourceCalendars: [family]
      summaryPatterns: ["("]
    requirement:
      coverageSummaryPatterns: ["sitter"]
      coverageSearchCalendars: [care]
`)

	_, _, err := LoadRulesDoc(path, zerolog.Nop())

	if err == nil {
		t.Fatal("LoadRulesDoc() error = nil, want pattern compile failure")
	}
	if !errors.Is(err, coverage.ErrInvalidPattern) {
		t.Errorf("error = %v, want ErrInvalidPattern", err)
	}
}

func TestLoadRulesDocMissingFileStillCompiles(t *testing.T) {
	doc, rules, err := LoadRulesDoc(filepath.Join(t.TempDir(), "missing.yaml"), zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadRulesDoc() error = %v", err)
	}
	if len(doc.Rules) != 0 {
		t.Errorf("doc rules = %v, want none", doc.Rules)
	}
	if rules == nil {
		t.Fatal("ruleset = nil, want an empty compiled ruleset")
	}
}

func TestLoadLinksAndInventory(t *testing.T) {
	links := LoadLinks(writeDoc(t, "links.yaml", `
- ruleId: sitter
  sourceEventId: shift-1
  coverageEventId: sitter-1
`), zerolog.Nop())
	if len(links) != 1 || links[0].CoverageEventID != "sitter-1" {
		t.Errorf("links = %+v, want the sitter link", links)
	}

	inventory := LoadInventory(writeDoc(t, "inventory.yaml", `
- account: home
  calendarId: family
- account: home
  calendarId: care
`), zerolog.Nop())
	if len(inventory) != 2 || inventory[1].Calendar != "care" {
		t.Errorf("inventory = %+v, want two home calendars", inventory)
	}
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
