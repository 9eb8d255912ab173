/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package conflict detects double-bookings: maximal clusters of
// transitively overlapping events, their shared minutes, and a
// split-attendance estimate for people sitting in several meetings at
// once.
package conflict

import (
	"fmt"
	"sort"
	"time"

	"github.com/friendsincode/verdandi_time/internal/models"
)

// Overlaps reports strict overlap. Back-to-back events do not conflict;
// interval merging uses the looser touching rule, and the two predicates
// stay separate on purpose.
func Overlaps(a, b models.Event) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// OverlapMinutes returns the whole minutes two events share, 0 when they
// do not overlap.
func OverlapMinutes(a, b models.Event) int {
	start := maxTime(a.Start, b.Start)
	end := minTime(a.End, b.End)
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}

// BuildGroups clusters timed events into overlap groups of two or more
// members. Events are start-sorted and swept pairwise while a later event
// can still begin before the current one ends; transitive links collapse
// through a disjoint set. Groups come back sorted by span start with ids
// numbered in that order, so identical inputs yield identical output.
func BuildGroups(events []models.Event) []models.OverlapGroup {
	timed := make([]models.Event, 0, len(events))
	for _, ev := range events {
		if ev.AllDay {
			continue
		}
		timed = append(timed, ev)
	}
	if len(timed) < 2 {
		return nil
	}
	sort.Slice(timed, func(i, j int) bool {
		return timed[i].Start.Before(timed[j].Start)
	})

	set := newDisjointSet(len(timed))
	for i := 0; i < len(timed); i++ {
		for j := i + 1; j < len(timed) && timed[j].Start.Before(timed[i].End); j++ {
			if Overlaps(timed[i], timed[j]) {
				set.union(i, j)
			}
		}
	}

	components := make(map[int][]models.Event)
	for i, ev := range timed {
		root := set.find(i)
		components[root] = append(components[root], ev)
	}

	var groups []models.OverlapGroup
	for _, members := range components {
		if len(members) < 2 {
			continue
		}
		// Members stay start-sorted: they were appended in sweep order.
		end := members[0].End
		for _, m := range members[1:] {
			if m.End.After(end) {
				end = m.End
			}
		}
		groups = append(groups, models.OverlapGroup{
			Start:  members[0].Start,
			End:    end,
			Events: members,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Start.Before(groups[j].Start)
	})
	for i := range groups {
		groups[i].ID = fmt.Sprintf("overlap-group-%d", i+1)
	}
	return groups
}

// SplitAttendanceMinutes estimates effective minutes per event when one
// person attends every event in the set at once: each event loses half of
// every pairwise overlap from its own duration, floored at zero. For
// three or more concurrent events this is a heuristic, not an exact
// partition of wall-clock time.
func SplitAttendanceMinutes(attending []models.Event) map[string]float64 {
	out := make(map[string]float64, len(attending))
	for i, ev := range attending {
		minutes := ev.Duration().Minutes()
		for j, other := range attending {
			if i == j {
				continue
			}
			minutes -= float64(OverlapMinutes(ev, other)) / 2
		}
		if minutes < 0 {
			minutes = 0
		}
		out[ev.ID] = minutes
	}
	return out
}

// disjointSet is an index-based union-find with path compression and
// union by rank. One instance per BuildGroups call; nothing is shared.
type disjointSet struct {
	parent []int
	rank   []int
}

func newDisjointSet(n int) *disjointSet {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &disjointSet{parent: parent, rank: make([]int, n)}
}

func (d *disjointSet) find(x int) int {
	root := x
	for d.parent[root] != root {
		root = d.parent[root]
	}
	for d.parent[x] != root {
		d.parent[x], x = root, d.parent[x]
	}
	return root
}

func (d *disjointSet) union(a, b int) {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return
	}
	if d.rank[ra] < d.rank[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	if d.rank[ra] == d.rank[rb] {
		d.rank[ra]++
	}
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
