/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package analyzer composes the engines into one report pipeline:
// accounting, free gaps, overlap groups, flex slots, goal allocation,
// coverage evaluation and lifecycle reconciliation. The engines stay
// pure; this is where logging, tracing and report assembly live.
package analyzer

import (
	"context"
	"sort"
	"time"

	"github.com/friendsincode/verdandi_time/internal/allocate"
	"github.com/friendsincode/verdandi_time/internal/config"
	"github.com/friendsincode/verdandi_time/internal/conflict"
	"github.com/friendsincode/verdandi_time/internal/coverage"
	"github.com/friendsincode/verdandi_time/internal/flexslot"
	"github.com/friendsincode/verdandi_time/internal/interval"
	"github.com/friendsincode/verdandi_time/internal/models"
	"github.com/friendsincode/verdandi_time/internal/telemetry"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Inputs is one analysis run's snapshot plus its config documents. Zero
// values disable the matching phase: no goals means no allocation, a nil
// ruleset skips coverage, no links skips lifecycle reconciliation.
type Inputs struct {
	Events   []models.Event
	Schedule *models.WeeklySchedule
	Goals    []models.Goal
	Rules    *coverage.Ruleset
	Links    []models.CoverageLink
}

// Service runs analysis passes over event snapshots.
type Service struct {
	cfg    *config.Config
	logger zerolog.Logger
}

// New constructs an analyzer service.
func New(cfg *config.Config, logger zerolog.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logger.With().Str("component", "analyzer").Logger(),
	}
}

// Analyze produces the full report for one snapshot. Only the envelope
// (id, timestamp) varies between runs on the same inputs; every phase
// below it is deterministic.
func (s *Service) Analyze(ctx context.Context, in Inputs, windowStart, windowEnd time.Time) models.Report {
	ctx, span := telemetry.StartSpan(ctx, "analyzer", "analyze")
	defer span.End()
	telemetry.AddSpanAttributes(span, map[string]any{
		"events":       len(in.Events),
		"window_start": windowStart.Format(time.RFC3339),
		"window_end":   windowEnd.Format(time.RFC3339),
	})

	report := models.Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		Timezone:    s.cfg.Timezone,
		EventCount:  len(in.Events),
	}

	report.AllDayCount, report.Accounting = s.account(ctx, in.Events)
	report.Gaps = s.freeGaps(ctx, in.Events, windowStart, windowEnd)
	report.OverlapGroups = s.overlapGroups(ctx, in.Events)
	report.FlexSlots = s.flexSlots(ctx, in)

	if len(in.Goals) > 0 {
		report.Goals = in.Goals
		plan := s.allocateGoals(ctx, in.Goals, report.FlexSlots)
		report.Proposals = plan.Proposals
		score := plan.Score
		report.Score = &score
	}

	if in.Rules != nil {
		cov := s.evaluateCoverage(ctx, in.Events, in.Rules)
		report.Coverage = &cov
		if len(in.Links) > 0 {
			report.Lifecycle = s.reconcileLinks(ctx, in.Events, in.Rules, in.Links)
		}
	}

	s.logger.Info().
		Str("report", report.ID).
		Int("events", report.EventCount).
		Int("gaps", len(report.Gaps)).
		Int("overlap_groups", len(report.OverlapGroups)).
		Int("flex_slots", len(report.FlexSlots)).
		Int("proposals", len(report.Proposals)).
		Msg("analysis complete")

	return report
}

// account tallies per-calendar raw and effective minutes. Raw sums each
// timed event alone; effective merges overlaps first, so the two differ
// exactly when a calendar double-books. All-day events count toward
// EventCount but carry no clock occupancy.
func (s *Service) account(ctx context.Context, events []models.Event) (int, []models.CalendarMinutes) {
	_, span := telemetry.StartSpan(ctx, "analyzer", "accounting")
	defer span.End()

	allDay := 0
	byCalendar := make(map[string][]models.Event)
	for _, ev := range events {
		if ev.AllDay {
			allDay++
		}
		byCalendar[ev.Calendar] = append(byCalendar[ev.Calendar], ev)
	}

	names := make([]string, 0, len(byCalendar))
	for name := range byCalendar {
		names = append(names, name)
	}
	sort.Strings(names)

	accounting := make([]models.CalendarMinutes, 0, len(names))
	for _, name := range names {
		evs := byCalendar[name]
		raw := 0
		for _, ev := range evs {
			if ev.AllDay {
				continue
			}
			raw += int(ev.Duration() / time.Minute)
		}
		accounting = append(accounting, models.CalendarMinutes{
			Calendar:         name,
			EventCount:       len(evs),
			RawMinutes:       raw,
			EffectiveMinutes: interval.EffectiveScheduledMinutes(evs),
		})
	}

	telemetry.AddSpanAttributes(span, map[string]any{
		"calendars":      len(accounting),
		"all_day_events": allDay,
	})
	return allDay, accounting
}

func (s *Service) freeGaps(ctx context.Context, events []models.Event, windowStart, windowEnd time.Time) []models.TimeGap {
	_, span := telemetry.StartSpan(ctx, "analyzer", "gaps")
	defer span.End()

	gaps := interval.Gaps(events, windowStart, windowEnd)
	telemetry.AddSpanAttributes(span, map[string]any{"gaps": len(gaps)})
	return gaps
}

// overlapGroups clusters double-bookings and attaches the advisory
// split-attendance estimate to each group, ordered by event id.
func (s *Service) overlapGroups(ctx context.Context, events []models.Event) []models.OverlapGroup {
	_, span := telemetry.StartSpan(ctx, "analyzer", "conflicts")
	defer span.End()

	groups := conflict.BuildGroups(events)
	for i := range groups {
		split := conflict.SplitAttendanceMinutes(groups[i].Events)
		ids := make([]string, 0, len(split))
		for id := range split {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		suggestions := make([]models.AttendanceSuggestion, 0, len(ids))
		for _, id := range ids {
			suggestions = append(suggestions, models.AttendanceSuggestion{
				EventID: id,
				Minutes: split[id],
			})
		}
		groups[i].SuggestedAttendance = suggestions
	}

	telemetry.AddSpanAttributes(span, map[string]any{"groups": len(groups)})
	return groups
}

func (s *Service) flexSlots(ctx context.Context, in Inputs) []models.FlexSlot {
	_, span := telemetry.StartSpan(ctx, "analyzer", "flexslots")
	defer span.End()

	slots := flexslot.Calculate(in.Events, flexslot.Config{
		Waking:        s.cfg.Waking(),
		MinGapMinutes: s.cfg.MinGapMinutes,
		SkipWeekends:  s.cfg.SkipWeekends,
		Location:      s.cfg.Location(),
		Schedule:      in.Schedule,
	})
	telemetry.AddSpanAttributes(span, map[string]any{"slots": len(slots)})
	return slots
}

func (s *Service) allocateGoals(ctx context.Context, goals []models.Goal, slots []models.FlexSlot) allocate.PlanResult {
	_, span := telemetry.StartSpan(ctx, "analyzer", "allocate")
	defer span.End()

	plan := allocate.Plan(goals, slots)
	telemetry.AddSpanAttributes(span, map[string]any{
		"goals":            len(goals),
		"proposals":        len(plan.Proposals),
		"goal_achievement": plan.Score.GoalAchievement,
	})
	return plan
}

func (s *Service) evaluateCoverage(ctx context.Context, events []models.Event, rules *coverage.Ruleset) models.CoverageReport {
	_, span := telemetry.StartSpan(ctx, "analyzer", "coverage")
	defer span.End()

	cov := coverage.Evaluate(events, rules)
	telemetry.AddSpanAttributes(span, map[string]any{
		"coverage_gaps": len(cov.Gaps),
		"fulfilled":     len(cov.Fulfilled),
		"opted_out":     len(cov.OptedOut),
	})
	if len(cov.Gaps) > 0 {
		s.logger.Warn().Int("coverage_gaps", len(cov.Gaps)).Msg("coverage gaps detected")
	}
	return cov
}

func (s *Service) reconcileLinks(ctx context.Context, events []models.Event, rules *coverage.Ruleset, links []models.CoverageLink) []models.CoverageLifecycleProposal {
	_, span := telemetry.StartSpan(ctx, "analyzer", "lifecycle")
	defer span.End()

	proposals := coverage.ReconcileLifecycle(events, rules, links)
	telemetry.AddSpanAttributes(span, map[string]any{
		"links":     len(links),
		"proposals": len(proposals),
	})
	return proposals
}
