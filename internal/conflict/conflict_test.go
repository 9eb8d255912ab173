/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package conflict

import (
	"testing"
	"time"

	"github.com/friendsincode/verdandi_time/internal/models"
)

func TestBackToBackEventsNeverGroup(t *testing.T) {
	events := []models.Event{
		ev("a", at(9, 0), at(10, 0)),
		ev("b", at(10, 0), at(11, 0)),
	}

	if groups := BuildGroups(events); len(groups) != 0 {
		t.Errorf("BuildGroups() = %d groups, want 0 for touching events", len(groups))
	}
}

func TestOverlappingPairFormsOneGroup(t *testing.T) {
	events := []models.Event{
		ev("a", at(9, 0), at(10, 0)),
		ev("b", at(9, 30), at(10, 30)),
	}

	groups := BuildGroups(events)

	if len(groups) != 1 {
		t.Fatalf("BuildGroups() = %d groups, want 1", len(groups))
	}
	g := groups[0]
	if len(g.Events) != 2 {
		t.Fatalf("group has %d members, want 2", len(g.Events))
	}
	if !g.Start.Equal(at(9, 0)) || !g.End.Equal(at(10, 30)) {
		t.Errorf("group span = [%v, %v], want [09:00, 10:30]", g.Start, g.End)
	}
	if g.ID != "overlap-group-1" {
		t.Errorf("group id = %q, want overlap-group-1", g.ID)
	}
}

func TestChainedOverlapsGroupTransitively(t *testing.T) {
	// a overlaps b, b overlaps c, but a and c never meet.
	events := []models.Event{
		ev("a", at(9, 0), at(10, 0)),
		ev("b", at(9, 45), at(11, 0)),
		ev("c", at(10, 30), at(11, 30)),
	}

	groups := BuildGroups(events)

	if len(groups) != 1 {
		t.Fatalf("BuildGroups() = %d groups, want 1", len(groups))
	}
	if len(groups[0].Events) != 3 {
		t.Errorf("group has %d members, want 3", len(groups[0].Events))
	}
	if !groups[0].End.Equal(at(11, 30)) {
		t.Errorf("group end = %v, want 11:30", groups[0].End)
	}
}

func TestSeparateClustersGetOrderedIDs(t *testing.T) {
	events := []models.Event{
		ev("late1", at(15, 0), at(16, 0)),
		ev("late2", at(15, 30), at(16, 30)),
		ev("early1", at(9, 0), at(10, 0)),
		ev("early2", at(9, 30), at(10, 30)),
		ev("lone", at(12, 0), at(13, 0)),
	}

	groups := BuildGroups(events)

	if len(groups) != 2 {
		t.Fatalf("BuildGroups() = %d groups, want 2", len(groups))
	}
	if groups[0].ID != "overlap-group-1" || !groups[0].Start.Equal(at(9, 0)) {
		t.Errorf("first group = %s starting %v, want overlap-group-1 at 09:00", groups[0].ID, groups[0].Start)
	}
	if groups[1].ID != "overlap-group-2" || !groups[1].Start.Equal(at(15, 0)) {
		t.Errorf("second group = %s starting %v, want overlap-group-2 at 15:00", groups[1].ID, groups[1].Start)
	}
}

func TestBuildGroupsSkipsAllDayEvents(t *testing.T) {
	allDay := ev("conf", at(0, 0), at(23, 0))
	allDay.AllDay = true
	events := []models.Event{
		allDay,
		ev("standup", at(9, 0), at(9, 30)),
	}

	if groups := BuildGroups(events); len(groups) != 0 {
		t.Errorf("BuildGroups() = %d groups, want 0", len(groups))
	}
}

func TestOverlapMinutes(t *testing.T) {
	tests := []struct {
		name string
		a, b models.Event
		want int
	}{
		{"half hour", ev("a", at(9, 0), at(10, 0)), ev("b", at(9, 30), at(10, 30)), 30},
		{"contained", ev("a", at(9, 0), at(12, 0)), ev("b", at(10, 0), at(11, 0)), 60},
		{"touching", ev("a", at(9, 0), at(10, 0)), ev("b", at(10, 0), at(11, 0)), 0},
		{"disjoint", ev("a", at(9, 0), at(10, 0)), ev("b", at(11, 0), at(12, 0)), 0},
		{"identical", ev("a", at(9, 0), at(10, 0)), ev("b", at(9, 0), at(10, 0)), 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverlapMinutes(tt.a, tt.b); got != tt.want {
				t.Errorf("OverlapMinutes() = %d, want %d", got, tt.want)
			}
			if got := OverlapMinutes(tt.b, tt.a); got != tt.want {
				t.Errorf("OverlapMinutes() reversed = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSplitAttendanceHalvesPairwiseOverlap(t *testing.T) {
	attending := []models.Event{
		ev("a", at(9, 0), at(10, 0)),
		ev("b", at(9, 30), at(10, 30)),
	}

	split := SplitAttendanceMinutes(attending)

	if split["a"] != 45 {
		t.Errorf("split[a] = %v, want 45", split["a"])
	}
	if split["b"] != 45 {
		t.Errorf("split[b] = %v, want 45", split["b"])
	}
}

func TestSplitAttendanceFloorsAtZero(t *testing.T) {
	// The short event sits inside three long ones and loses more than it
	// has: 30 - 3*15 would go negative.
	attending := []models.Event{
		ev("short", at(10, 0), at(10, 30)),
		ev("long1", at(9, 0), at(12, 0)),
		ev("long2", at(9, 30), at(12, 30)),
		ev("long3", at(8, 0), at(11, 0)),
	}

	split := SplitAttendanceMinutes(attending)

	if split["short"] != 0 {
		t.Errorf("split[short] = %v, want 0", split["short"])
	}
}

func TestOverlapsPredicateIsStrict(t *testing.T) {
	a := ev("a", at(9, 0), at(10, 0))
	b := ev("b", at(10, 0), at(11, 0))
	c := ev("c", at(9, 59), at(11, 0))

	if Overlaps(a, b) {
		t.Error("Overlaps() = true for touching events, want false")
	}
	if !Overlaps(a, c) {
		t.Error("Overlaps() = false for a one-minute overlap, want true")
	}
}

func at(hour, min int) time.Time {
	return time.Date(2026, time.March, 3, hour, min, 0, 0, time.UTC)
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
