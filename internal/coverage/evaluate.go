/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package coverage

import (
	"regexp"
	"strings"
	"time"

	"github.com/friendsincode/verdandi_time/internal/interval"
	"github.com/friendsincode/verdandi_time/internal/models"
)

// Evaluate checks every enabled rule against the event snapshot. For
// each triggered source event it either records an opt-out, a
// fulfillment, or a gap with enough detail for the caller to draft the
// missing coverage event. Input events are never mutated.
func Evaluate(events []models.Event, rules *Ruleset) models.CoverageReport {
	var report models.CoverageReport
	for _, cr := range rules.rules {
		if !cr.enabled {
			continue
		}
		sourceCals := stringSet(cr.rule.Trigger.SourceCalendars)
		searchCals := stringSet(cr.rule.Requirement.CoverageSearchCalendars)

		for _, source := range events {
			if !sourceCals[source.Calendar] || !matchesTrigger(cr, source) {
				continue
			}
			if optOut, ok := rules.checkOptOut(cr, source); ok {
				report.OptedOut = append(report.OptedOut, optOut)
				continue
			}

			req := cr.rule.Requirement
			requiredStart := source.Start.Add(time.Duration(req.StartOffsetMinutes) * time.Minute)
			requiredEnd := source.End.Add(time.Duration(req.EndOffsetMinutes) * time.Minute)
			requiredMinutes := int(requiredEnd.Sub(requiredStart) / time.Minute)
			if requiredMinutes <= 0 {
				report.Fulfilled = append(report.Fulfilled, models.CoverageFulfillment{
					RuleID:          cr.rule.ID,
					SourceEventID:   source.ID,
					CoveragePercent: 100,
				})
				continue
			}

			covered, coverIDs := coveredMinutes(events, cr, source, searchCals, requiredStart, requiredEnd)
			percent := float64(covered) / float64(requiredMinutes) * 100
			if percent > 100 {
				percent = 100
			}

			if percent+coverageEpsilon < cr.minCoverage {
				report.Gaps = append(report.Gaps, models.CoverageGap{
					RuleID:          cr.rule.ID,
					RuleName:        cr.rule.Name,
					SourceEventID:   source.ID,
					SourceSummary:   source.Summary,
					RequiredStart:   requiredStart,
					RequiredEnd:     requiredEnd,
					RequiredMinutes: requiredMinutes,
					CoveredMinutes:  covered,
					MissingMinutes:  requiredMinutes - covered,
					CoveragePercent: percent,
					CreateTarget:    req.CreateTarget,
					CoverageColorID: req.CoverageColorID,
				})
				continue
			}
			report.Fulfilled = append(report.Fulfilled, models.CoverageFulfillment{
				RuleID:           cr.rule.ID,
				SourceEventID:    source.ID,
				CoveragePercent:  percent,
				CoverageEventIDs: coverIDs,
			})
		}
	}
	return report
}

// ReconcileLifecycle replays previously recorded source-to-coverage
// links against the current snapshot: when a source event is gone but
// its coverage remains and the rule orphan policy is propose-delete, a
// deletion proposal is emitted. Links for unknown or disabled rules are
// skipped; nothing is ever deleted here.
func ReconcileLifecycle(events []models.Event, rules *Ruleset, links []models.CoverageLink) []models.CoverageLifecycleProposal {
	present := make(map[string]bool, len(events))
	for _, ev := range events {
		present[ev.ID] = true
	}
	byID := make(map[string]compiledRule, len(rules.rules))
	for _, cr := range rules.rules {
		byID[cr.rule.ID] = cr
	}

	var proposals []models.CoverageLifecycleProposal
	for _, link := range links {
		cr, ok := byID[link.RuleID]
		if !ok || !cr.enabled {
			continue
		}
		if present[link.SourceEventID] || !present[link.CoverageEventID] {
			continue
		}
		if cr.rule.OrphanPolicy != models.OrphanPolicyProposeDelete {
			continue
		}
		proposals = append(proposals, models.CoverageLifecycleProposal{
			RuleID:          link.RuleID,
			SourceEventID:   link.SourceEventID,
			CoverageEventID: link.CoverageEventID,
			Action:          models.OrphanPolicyProposeDelete,
		})
	}
	return proposals
}

// coveredMinutes sums the merged, window-clipped minutes of coverage
// candidates: timed events on the search calendars matching the coverage
// patterns. The source never covers itself.
func coveredMinutes(events []models.Event, cr compiledRule, source models.Event, searchCals map[string]bool, windowStart, windowEnd time.Time) (int, []string) {
	var spans []interval.Span
	var ids []string
	for _, candidate := range events {
		if candidate.ID == source.ID || candidate.AllDay {
			continue
		}
		if !searchCals[candidate.Calendar] || !matchesAny(cr.coverage, candidate.Summary) {
			continue
		}
		if s, ok := interval.Clip(interval.Span{Start: candidate.Start, End: candidate.End}, windowStart, windowEnd); ok {
			spans = append(spans, s)
			ids = append(ids, candidate.ID)
		}
	}
	total := 0
	for _, s := range interval.Merge(spans) {
		total += s.Minutes()
	}
	return total, ids
}

// matchesTrigger picks the pattern set for the event class: all-day and
// timed events use their dedicated sets when configured and fall back to
// the general set otherwise.
func matchesTrigger(cr compiledRule, ev models.Event) bool {
	set := cr.triggerGeneral
	if ev.AllDay && len(cr.triggerAllDay) > 0 {
		set = cr.triggerAllDay
	} else if !ev.AllDay && len(cr.triggerTimed) > 0 {
		set = cr.triggerTimed
	}
	return matchesAny(set, ev.Summary)
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// checkOptOut walks the configured fields in order and, per field, tries
// the rule-scoped token before every global token against the lowercased
// text. The first hit wins.
func (rs *Ruleset) checkOptOut(cr compiledRule, ev models.Event) (models.CoverageOptOut, bool) {
	for _, field := range rs.checkOrder {
		var text string
		switch field {
		case models.OptOutFieldDescription:
			text = ev.Description
		case models.OptOutFieldTitle:
			text = ev.Summary
		default:
			continue
		}
		text = strings.ToLower(text)
		for _, token := range append([]string{cr.scopedToken}, rs.globalTokens...) {
			if token == "" {
				continue
			}
			if strings.Contains(text, strings.ToLower(token)) {
				return models.CoverageOptOut{
					RuleID:        cr.rule.ID,
					SourceEventID: ev.ID,
					SourceSummary: ev.Summary,
					Token:         token,
					Field:         field,
				}, true
			}
		}
	}
	return models.CoverageOptOut{}, false
}

func stringSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
