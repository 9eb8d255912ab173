/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package allocate greedily places goal minutes into flex slots under
// session-length and day-part constraints, and scores the outcome.
package allocate

import (
	"sort"
	"time"

	"github.com/friendsincode/verdandi_time/internal/models"
)

// PlanResult is one multi-goal allocation pass.
type PlanResult struct {
	Proposals []models.ProposedEvent
	Score     models.OptimizationScore
}

// AllocateGoal places one goal into the given slots. Slots shorter than
// the goal's minimum session are skipped; preferred day parts are tried
// first; each slot is filled sequentially from its start. Partial
// satisfaction is a normal outcome, not an error.
func AllocateGoal(goal models.Goal, slots []models.FlexSlot) []models.ProposedEvent {
	return allocateInto(goal, newSlotStates(slots))
}

// Plan allocates several goals into shared slot capacity in priority
// order (lower value first, ties keep input order) and scores the
// result.
func Plan(goals []models.Goal, slots []models.FlexSlot) PlanResult {
	states := newSlotStates(slots)

	ordered := make([]models.Goal, len(goals))
	copy(ordered, goals)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	var proposals []models.ProposedEvent
	for _, goal := range ordered {
		proposals = append(proposals, allocateInto(goal, states)...)
	}
	return PlanResult{Proposals: proposals, Score: Score(goals, proposals)}
}

// Score summarizes how well proposals serve their goals: mean capped
// achieved/requested ratio per goal, mean proposed block length, and
// mean day-part alignment over proposals whose goal declared a
// preference. Goals requesting no time stay out of the achievement
// average; empty sets score zero.
func Score(goals []models.Goal, proposed []models.ProposedEvent) models.OptimizationScore {
	allocated := make(map[string]int)
	totalMinutes := 0
	for _, p := range proposed {
		allocated[p.GoalID] += p.DurationMinutes
		totalMinutes += p.DurationMinutes
	}

	var score models.OptimizationScore

	achievementSum, counted := 0.0, 0
	for _, g := range goals {
		requested := g.RequestedMinutes()
		if requested <= 0 {
			continue
		}
		ratio := float64(allocated[g.ID]) / float64(requested)
		if ratio > 1 {
			ratio = 1
		}
		achievementSum += ratio
		counted++
	}
	if counted > 0 {
		score.GoalAchievement = achievementSum / float64(counted)
	}

	if len(proposed) > 0 {
		score.AverageBlockMinutes = float64(totalMinutes) / float64(len(proposed))
	}

	preferences := make(map[string]models.DayPart)
	for _, g := range goals {
		if g.Preference != "" {
			preferences[g.ID] = g.Preference
		}
	}
	alignSum, aligned := 0.0, 0
	for _, p := range proposed {
		pref, ok := preferences[p.GoalID]
		if !ok {
			continue
		}
		part := models.DayPartForHour(p.Start.Hour())
		switch {
		case part == pref:
			alignSum++
		case part.Adjacent(pref):
			alignSum += 0.5
		}
		aligned++
	}
	if aligned > 0 {
		score.PreferenceAlignment = alignSum / float64(aligned)
	}
	return score
}

// slotState tracks how much of one slot is still free. The cursor only
// moves forward, so allocations inside a slot never overlap.
type slotState struct {
	cursor time.Time
	end    time.Time
}

func newSlotStates(slots []models.FlexSlot) []*slotState {
	states := make([]*slotState, len(slots))
	for i, s := range slots {
		states[i] = &slotState{cursor: s.Start, end: s.End}
	}
	return states
}

func (s *slotState) remainingMinutes() int {
	return int(s.end.Sub(s.cursor) / time.Minute)
}

func allocateInto(goal models.Goal, states []*slotState) []models.ProposedEvent {
	remaining := goal.RequestedMinutes()
	if remaining <= 0 {
		return nil
	}
	minSession := 0
	if goal.MinSessionMinutes != nil {
		minSession = *goal.MinSessionMinutes
	}
	maxSession := 0
	if goal.MaxSessionMinutes != nil {
		maxSession = *goal.MaxSessionMinutes
	}

	var proposals []models.ProposedEvent
	for _, st := range orderByPreference(goal.Preference, states, minSession) {
		if remaining <= 0 {
			break
		}
		for remaining > 0 {
			avail := st.remainingMinutes()
			if avail <= 0 || avail < minSession {
				break
			}
			take := remaining
			if maxSession > 0 && take > maxSession {
				take = maxSession
			}
			if take > avail {
				take = avail
			}
			if take < minSession {
				break
			}
			end := st.cursor.Add(time.Duration(take) * time.Minute)
			proposals = append(proposals, models.ProposedEvent{
				Summary:         goal.Name,
				Start:           st.cursor,
				End:             end,
				DurationMinutes: take,
				ColorID:         goal.Category,
				GoalID:          goal.ID,
			})
			st.cursor = end
			remaining -= take
		}
	}
	return proposals
}

// orderByPreference keeps slots that can still host a minimum session
// and, when the goal prefers a day part, tries exact-window slots before
// adjacent ones before the rest. Without a preference the original slot
// order stands.
func orderByPreference(pref models.DayPart, states []*slotState, minSession int) []*slotState {
	eligible := make([]*slotState, 0, len(states))
	for _, st := range states {
		if avail := st.remainingMinutes(); avail > 0 && avail >= minSession {
			eligible = append(eligible, st)
		}
	}
	if pref == "" {
		return eligible
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return slotScore(pref, eligible[i]) > slotScore(pref, eligible[j])
	})
	return eligible
}

func slotScore(pref models.DayPart, st *slotState) int {
	part := models.DayPartForHour(st.cursor.Hour())
	switch {
	case part == pref:
		return 2
	case part.Adjacent(pref):
		return 1
	}
	return 0
}
