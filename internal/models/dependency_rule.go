/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "time"

// ActionMode selects what the engine does about a detected coverage gap.
type ActionMode string

const (
	ActionModePropose ActionMode = "propose" // emit a gap record with a draft target
)

// OrphanPolicy selects what happens to coverage whose source event has
// disappeared.
type OrphanPolicy string

const (
	OrphanPolicyProposeDelete OrphanPolicy = "propose-delete"
)

// OptOutField names an event text field checked for opt-out tokens.
type OptOutField string

const (
	OptOutFieldDescription OptOutField = "description"
	OptOutFieldTitle       OptOutField = "title"
)

// RuleTrigger selects the source events a dependency rule applies to.
// AllDayPatterns and TimedPatterns, when present, replace Patterns for
// their event class.
type RuleTrigger struct {
	SourceCalendars []string `json:"sourceCalendars" yaml:"sourceCalendars"`
	Patterns        []string `json:"summaryPatterns" yaml:"summaryPatterns"`
	AllDayPatterns  []string `json:"allDaySummaryPatterns,omitempty" yaml:"allDaySummaryPatterns,omitempty"`
	TimedPatterns   []string `json:"timedSummaryPatterns,omitempty" yaml:"timedSummaryPatterns,omitempty"`
}

// CreateTarget names the account and calendar where a draft coverage
// event should be created.
type CreateTarget struct {
	Account  string `json:"account" yaml:"account"`
	Calendar string `json:"calendarId" yaml:"calendarId"`
}

// RuleRequirement describes the coverage a triggered event needs. Offsets
// widen (negative start, positive end) or narrow the required window
// relative to the source event.
type RuleRequirement struct {
	CoveragePatterns        []string     `json:"coverageSummaryPatterns" yaml:"coverageSummaryPatterns"`
	CoverageSearchCalendars []string     `json:"coverageSearchCalendars" yaml:"coverageSearchCalendars"`
	CreateTarget            CreateTarget `json:"createTarget" yaml:"createTarget"`
	CoverageColorID         string       `json:"coverageColorId,omitempty" yaml:"coverageColorId,omitempty"`
	StartOffsetMinutes      int          `json:"startOffsetMinutes,omitempty" yaml:"startOffsetMinutes,omitempty"`
	EndOffsetMinutes        int          `json:"endOffsetMinutes,omitempty" yaml:"endOffsetMinutes,omitempty"`
	MinCoveragePercent      *float64     `json:"minCoveragePercent,omitempty" yaml:"minCoveragePercent,omitempty"`
}

// DependencyRule pairs a trigger with a coverage requirement. Nil Enabled
// means enabled.
type DependencyRule struct {
	ID           string          `json:"id" yaml:"id"`
	Enabled      *bool           `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Name         string          `json:"name" yaml:"name"`
	ActionMode   ActionMode      `json:"actionMode,omitempty" yaml:"actionMode,omitempty"`
	OrphanPolicy OrphanPolicy    `json:"orphanPolicy,omitempty" yaml:"orphanPolicy,omitempty"`
	Trigger      RuleTrigger     `json:"trigger" yaml:"trigger"`
	Requirement  RuleRequirement `json:"requirement" yaml:"requirement"`
}

// OptOutConfig is the document-level opt-out contract: global tokens, the
// template expanded per rule (with {ruleId} substituted), and the event
// fields checked in order.
type OptOutConfig struct {
	Tokens        []string      `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	TokenTemplate string        `json:"tokenTemplate,omitempty" yaml:"tokenTemplate,omitempty"`
	CheckOrder    []OptOutField `json:"checkOrder,omitempty" yaml:"checkOrder,omitempty"`
}

// DependencyRulesDoc is the consumed shape of the dependency-rules
// configuration document.
type DependencyRulesDoc struct {
	Rules  []DependencyRule `json:"rules" yaml:"rules"`
	OptOut OptOutConfig     `json:"optOut,omitempty" yaml:"optOut,omitempty"`
}

// CoverageGap records a triggered source event whose required window is
// insufficiently covered.
type CoverageGap struct {
	RuleID          string       `json:"ruleId"`
	RuleName        string       `json:"ruleName"`
	SourceEventID   string       `json:"sourceEventId"`
	SourceSummary   string       `json:"sourceSummary"`
	RequiredStart   time.Time    `json:"requiredStart"`
	RequiredEnd     time.Time    `json:"requiredEnd"`
	RequiredMinutes int          `json:"requiredMinutes"`
	CoveredMinutes  int          `json:"coveredMinutes"`
	MissingMinutes  int          `json:"missingMinutes"`
	CoveragePercent float64      `json:"coveragePercent"`
	CreateTarget    CreateTarget `json:"createTarget"`
	CoverageColorID string       `json:"coverageColorId,omitempty"`
}

// CoverageOptOut records a source event excluded from coverage accounting
// by an opt-out token.
type CoverageOptOut struct {
	RuleID        string      `json:"ruleId"`
	SourceEventID string      `json:"sourceEventId"`
	SourceSummary string      `json:"sourceSummary"`
	Token         string      `json:"token"`
	Field         OptOutField `json:"field"`
}

// CoverageFulfillment records a triggered source event whose requirement
// is met.
type CoverageFulfillment struct {
	RuleID           string   `json:"ruleId"`
	SourceEventID    string   `json:"sourceEventId"`
	CoveragePercent  float64  `json:"coveragePercent"`
	CoverageEventIDs []string `json:"coverageEventIds,omitempty"`
}

// CoverageReport bundles one evaluation pass over the event set.
type CoverageReport struct {
	Gaps      []CoverageGap         `json:"gaps"`
	OptedOut  []CoverageOptOut      `json:"optedOut"`
	Fulfilled []CoverageFulfillment `json:"fulfilled"`
}

// CoverageLink is a source-to-coverage pairing recorded by a previous
// run, consumed by lifecycle reconciliation.
type CoverageLink struct {
	RuleID          string `json:"ruleId" yaml:"ruleId"`
	SourceEventID   string `json:"sourceEventId" yaml:"sourceEventId"`
	CoverageEventID string `json:"coverageEventId" yaml:"coverageEventId"`
}

// CoverageLifecycleProposal proposes an action on an orphaned coverage
// event. The engine only ever proposes; deletion stays with the caller.
type CoverageLifecycleProposal struct {
	RuleID          string       `json:"ruleId"`
	SourceEventID   string       `json:"sourceEventId"`
	CoverageEventID string       `json:"coverageEventId"`
	Action          OrphanPolicy `json:"action"`
}

// CalendarInfo is one calendar in a caller-supplied account inventory.
type CalendarInfo struct {
	Account  string `json:"account" yaml:"account"`
	Calendar string `json:"calendarId" yaml:"calendarId"`
}

// ConfigIssue flags a rule referencing an account or calendar missing
// from the inventory.
type ConfigIssue struct {
	RuleID  string `json:"ruleId"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}
