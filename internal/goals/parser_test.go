/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package goals

import (
	"testing"

	"github.com/friendsincode/verdandi_time/internal/models"
)

func TestParseSessionCountWithPerSessionDuration(t *testing.T) {
	parsed := ParseText("workout 3x this week, 45 min each")

	if len(parsed) != 1 {
		t.Fatalf("ParseText() = %d goals, want 1", len(parsed))
	}
	g := parsed[0]
	if g.Kind != models.GoalKindTime {
		t.Errorf("kind = %q, want time", g.Kind)
	}
	if g.Name != "Workout" || g.ID != "workout" {
		t.Errorf("name/id = %q/%q, want Workout/workout", g.Name, g.ID)
	}
	if g.SessionsPerWeek == nil || *g.SessionsPerWeek != 3 {
		t.Errorf("sessionsPerWeek = %v, want 3", g.SessionsPerWeek)
	}
	if g.MinSessionMinutes == nil || *g.MinSessionMinutes != 45 {
		t.Errorf("minSessionMinutes = %v, want 45", g.MinSessionMinutes)
	}
	if g.MaxSessionMinutes == nil || *g.MaxSessionMinutes != 45 {
		t.Errorf("maxSessionMinutes = %v, want 45", g.MaxSessionMinutes)
	}
	if g.TotalMinutes != 135 {
		t.Errorf("totalMinutes = %d, want 135", g.TotalMinutes)
	}
}

func TestParseBareDurationNextToCountReadsAsPerSession(t *testing.T) {
	parsed := ParseText("run 3x 30 minutes")

	if len(parsed) != 1 {
		t.Fatalf("ParseText() = %d goals, want 1", len(parsed))
	}
	g := parsed[0]
	if g.TotalMinutes != 90 {
		t.Errorf("totalMinutes = %d, want 90", g.TotalMinutes)
	}
	if g.MinSessionMinutes == nil || *g.MinSessionMinutes != 30 {
		t.Errorf("minSessionMinutes = %v, want 30", g.MinSessionMinutes)
	}
	if g.MaxSessionMinutes == nil || *g.MaxSessionMinutes != 30 {
		t.Errorf("maxSessionMinutes = %v, want 30", g.MaxSessionMinutes)
	}
	if g.Name != "Run" {
		t.Errorf("name = %q, want Run", g.Name)
	}
}

func TestParseHoursLine(t *testing.T) {
	parsed := ParseText("spanish practice 2 hours")

	if len(parsed) != 1 {
		t.Fatalf("ParseText() = %d goals, want 1", len(parsed))
	}
	g := parsed[0]
	if g.TotalMinutes != 120 {
		t.Errorf("totalMinutes = %d, want 120", g.TotalMinutes)
	}
	if g.Name != "Spanish practice" || g.ID != "spanish-practice" {
		t.Errorf("name/id = %q/%q, want Spanish practice/spanish-practice", g.Name, g.ID)
	}
	if g.MinSessionMinutes != nil || g.SessionsPerWeek != nil {
		t.Error("session fields set on a plain hours line, want none")
	}
}

func TestParseFractionalHoursAndDayPart(t *testing.T) {
	parsed := ParseText("1.5 hours of deep work in the morning")

	if len(parsed) != 1 {
		t.Fatalf("ParseText() = %d goals, want 1", len(parsed))
	}
	g := parsed[0]
	if g.TotalMinutes != 90 {
		t.Errorf("totalMinutes = %d, want 90", g.TotalMinutes)
	}
	if g.Preference != models.DayPartMorning {
		t.Errorf("preference = %q, want morning", g.Preference)
	}
	if g.Name != "Deep work" {
		t.Errorf("name = %q, want Deep work", g.Name)
	}
}

func TestParseMinutesAndEveningPreference(t *testing.T) {
	parsed := ParseText("read 30 minutes every evening")

	if len(parsed) != 1 {
		t.Fatalf("ParseText() = %d goals, want 1", len(parsed))
	}
	g := parsed[0]
	if g.TotalMinutes != 30 {
		t.Errorf("totalMinutes = %d, want 30", g.TotalMinutes)
	}
	if g.Preference != models.DayPartEvening {
		t.Errorf("preference = %q, want evening", g.Preference)
	}
	if g.Name != "Read" {
		t.Errorf("name = %q, want Read", g.Name)
	}
}

func TestParseExplicitSessionRange(t *testing.T) {
	parsed := ParseText("study 30-45 minutes each day")

	if len(parsed) != 1 {
		t.Fatalf("ParseText() = %d goals, want 1", len(parsed))
	}
	g := parsed[0]
	if g.MinSessionMinutes == nil || *g.MinSessionMinutes != 30 {
		t.Errorf("minSessionMinutes = %v, want 30", g.MinSessionMinutes)
	}
	if g.MaxSessionMinutes == nil || *g.MaxSessionMinutes != 45 {
		t.Errorf("maxSessionMinutes = %v, want 45", g.MaxSessionMinutes)
	}
	if g.TotalMinutes != 0 {
		t.Errorf("totalMinutes = %d, want 0 when only a range is given", g.TotalMinutes)
	}
	if g.Name != "Study" {
		t.Errorf("name = %q, want Study", g.Name)
	}
}

func TestParseHoursBeatMinutesOnTheSameLine(t *testing.T) {
	parsed := ParseText("practice 1 hour 30 minutes")

	if len(parsed) != 1 {
		t.Fatalf("ParseText() = %d goals, want 1", len(parsed))
	}
	g := parsed[0]
	if g.TotalMinutes != 60 {
		t.Errorf("totalMinutes = %d, want 60 from the hours pattern", g.TotalMinutes)
	}
	if g.Name != "Practice" {
		t.Errorf("name = %q, want Practice with time tokens stripped", g.Name)
	}
}

func TestParseOutcomeStatementWithEstimate(t *testing.T) {
	parsed := ParseText("focus on the launch plan to finish the beta rollout, about 10 hours")

	if len(parsed) != 1 {
		t.Fatalf("ParseText() = %d goals, want 1", len(parsed))
	}
	g := parsed[0]
	if g.Kind != models.GoalKindOutcome {
		t.Fatalf("kind = %q, want outcome", g.Kind)
	}
	if g.EstimatedMinutes != 600 {
		t.Errorf("estimatedMinutes = %d, want 600", g.EstimatedMinutes)
	}
	if g.Name != "Launch plan" || g.ID != "launch-plan" {
		t.Errorf("name/id = %q/%q, want Launch plan/launch-plan", g.Name, g.ID)
	}
	if g.Description == "" {
		t.Error("description empty, want the original line")
	}
}

func TestParseOutcomeStatementWithoutEstimate(t *testing.T) {
	parsed := ParseText("work on the garden to achieve a tidy yard")

	if len(parsed) != 1 {
		t.Fatalf("ParseText() = %d goals, want 1", len(parsed))
	}
	g := parsed[0]
	if g.Kind != models.GoalKindOutcome {
		t.Fatalf("kind = %q, want outcome", g.Kind)
	}
	if g.EstimatedMinutes != 0 {
		t.Errorf("estimatedMinutes = %d, want 0 when no estimate given", g.EstimatedMinutes)
	}
	if g.Name != "Garden" {
		t.Errorf("name = %q, want Garden", g.Name)
	}
}

func TestParseLinesWithoutDurationsYieldNothing(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"plain text", "call mom"},
		{"count only", "3 times a week: yoga"},
		{"empty", "   "},
		{"bullet only", "- "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if parsed := ParseText(tt.line); len(parsed) != 0 {
				t.Errorf("ParseText(%q) = %d goals, want 0", tt.line, len(parsed))
			}
		})
	}
}

func TestParseStripsBulletsAndNumbering(t *testing.T) {
	text := "- workout 45 min\n* read 1 hour\n2. meditate 10 minutes\n\n"

	parsed := ParseText(text)

	if len(parsed) != 3 {
		t.Fatalf("ParseText() = %d goals, want 3", len(parsed))
	}
	wantNames := []string{"Workout", "Read", "Meditate"}
	wantTotals := []int{45, 60, 10}
	for i, g := range parsed {
		if g.Name != wantNames[i] {
			t.Errorf("goal %d name = %q, want %q", i, g.Name, wantNames[i])
		}
		if g.TotalMinutes != wantTotals[i] {
			t.Errorf("goal %d totalMinutes = %d, want %d", i, g.TotalMinutes, wantTotals[i])
		}
	}
}

func TestParseDefaults(t *testing.T) {
	parsed := ParseText("guitar 20 minutes")

	if len(parsed) != 1 {
		t.Fatalf("ParseText() = %d goals, want 1", len(parsed))
	}
	g := parsed[0]
	if g.Category != "personal" {
		t.Errorf("category = %q, want personal", g.Category)
	}
	if g.Priority != 3 {
		t.Errorf("priority = %d, want 3", g.Priority)
	}
	if g.Recurring {
		t.Error("recurring = true, want false for parsed lines")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Workout", "workout"},
		{"spaces", "Deep work", "deep-work"},
		{"punctuation", "Launch plan!", "launch-plan"},
		{"digits", "Spanish 101", "spanish-101"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slugify(tt.input); got != tt.want {
				t.Errorf("slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
