/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package coverage evaluates dependency rules: an event of one kind
// requiring a paired coverage event within a window. It detects missing
// coverage, honors opt-out tokens, and reconciles coverage whose source
// event has disappeared.
package coverage

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/friendsincode/verdandi_time/internal/models"
)

// ErrInvalidPattern wraps every summary-pattern compile failure.
var ErrInvalidPattern = errors.New("invalid summary pattern")

const (
	// DefaultOptOutToken suppresses coverage evaluation for any rule when
	// present in a source event's checked fields.
	DefaultOptOutToken = "[no-coverage]"
	// DefaultTokenTemplate yields the rule-scoped opt-out token.
	DefaultTokenTemplate = "[no-coverage:{ruleId}]"

	defaultMinCoverage = 100.0
	coverageEpsilon    = 1e-9
)

type compiledRule struct {
	rule        models.DependencyRule
	enabled     bool
	minCoverage float64
	scopedToken string

	triggerGeneral []*regexp.Regexp
	triggerAllDay  []*regexp.Regexp
	triggerTimed   []*regexp.Regexp
	coverage       []*regexp.Regexp
}

// Ruleset is a normalized, precompiled dependency-rules document, ready
// for evaluation. Build one per document with CompileRules.
type Ruleset struct {
	rules        []compiledRule
	globalTokens []string
	checkOrder   []models.OptOutField
}

// CompileRules fills rule defaults and precompiles every summary pattern
// case-insensitively. The first invalid pattern aborts compilation with
// an error naming the rule and field: a broken safety rule must never be
// dropped silently. Disabled rules compile too, so their typos surface
// now rather than on a later re-enable; evaluation skips them.
func CompileRules(doc models.DependencyRulesDoc) (*Ruleset, error) {
	rs := &Ruleset{
		globalTokens: doc.OptOut.Tokens,
		checkOrder:   doc.OptOut.CheckOrder,
	}
	if len(rs.globalTokens) == 0 {
		rs.globalTokens = []string{DefaultOptOutToken}
	}
	if len(rs.checkOrder) == 0 {
		rs.checkOrder = []models.OptOutField{models.OptOutFieldDescription, models.OptOutFieldTitle}
	}
	template := doc.OptOut.TokenTemplate
	if template == "" {
		template = DefaultTokenTemplate
	}

	for _, rule := range doc.Rules {
		normalized := rule
		if normalized.ActionMode == "" {
			normalized.ActionMode = models.ActionModePropose
		}
		if normalized.OrphanPolicy == "" {
			normalized.OrphanPolicy = models.OrphanPolicyProposeDelete
		}
		minCoverage := defaultMinCoverage
		if normalized.Requirement.MinCoveragePercent != nil {
			minCoverage = *normalized.Requirement.MinCoveragePercent
		}

		cr := compiledRule{
			rule:        normalized,
			enabled:     normalized.Enabled == nil || *normalized.Enabled,
			minCoverage: minCoverage,
			scopedToken: strings.ReplaceAll(template, "{ruleId}", normalized.ID),
		}

		var err error
		if cr.triggerGeneral, err = compilePatterns(normalized.Trigger.Patterns); err != nil {
			return nil, patternError(normalized.ID, "trigger.summaryPatterns", err)
		}
		if cr.triggerAllDay, err = compilePatterns(normalized.Trigger.AllDayPatterns); err != nil {
			return nil, patternError(normalized.ID, "trigger.allDaySummaryPatterns", err)
		}
		if cr.triggerTimed, err = compilePatterns(normalized.Trigger.TimedPatterns); err != nil {
			return nil, patternError(normalized.ID, "trigger.timedSummaryPatterns", err)
		}
		if cr.coverage, err = compilePatterns(normalized.Requirement.CoveragePatterns); err != nil {
			return nil, patternError(normalized.ID, "requirement.coverageSummaryPatterns", err)
		}

		rs.rules = append(rs.rules, cr)
	}
	return rs, nil
}

// ValidateInventory reports every account or calendar a rule references
// that the inventory does not contain. It runs on the raw document at
// configuration time, before any analysis.
func ValidateInventory(doc models.DependencyRulesDoc, inventory []models.CalendarInfo) []models.ConfigIssue {
	calendars := make(map[string]bool, len(inventory))
	accounts := make(map[string]bool, len(inventory))
	for _, info := range inventory {
		calendars[info.Calendar] = true
		accounts[info.Account] = true
	}

	var issues []models.ConfigIssue
	report := func(ruleID, field, value, message string) {
		issues = append(issues, models.ConfigIssue{
			RuleID:  ruleID,
			Field:   field,
			Value:   value,
			Message: message,
		})
	}

	for _, rule := range doc.Rules {
		for _, cal := range rule.Trigger.SourceCalendars {
			if !calendars[cal] {
				report(rule.ID, "trigger.sourceCalendars", cal, "unknown calendar")
			}
		}
		for _, cal := range rule.Requirement.CoverageSearchCalendars {
			if !calendars[cal] {
				report(rule.ID, "requirement.coverageSearchCalendars", cal, "unknown calendar")
			}
		}
		target := rule.Requirement.CreateTarget
		if target.Account != "" && !accounts[target.Account] {
			report(rule.ID, "requirement.createTarget.account", target.Account, "unknown account")
		}
		if target.Calendar != "" && !calendars[target.Calendar] {
			report(rule.ID, "requirement.createTarget.calendarId", target.Calendar, "unknown calendar")
		}
	}
	return issues
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func patternError(ruleID, field string, err error) error {
	return fmt.Errorf("%w: rule %q field %s: %v", ErrInvalidPattern, ruleID, field, err)
}
