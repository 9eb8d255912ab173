/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"os"

	"github.com/friendsincode/verdandi_time/internal/coverage"
	"github.com/friendsincode/verdandi_time/internal/models"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Document loaders for the three analyzer configuration documents plus
// the optional lifecycle-links and calendar-inventory files. Documents
// are YAML, which also accepts plain JSON. A missing or malformed file
// degrades to the zero document with a warning, so an analysis never
// fails because an optional config is absent. The one exception is an
// invalid summary pattern inside the dependency rules: LoadRulesDoc
// surfaces that as an error instead of dropping the rule.

// LoadScheduleDoc reads the weekly schedule document. Nil means no
// schedule is configured and the fixed day window applies.
func LoadScheduleDoc(path string, logger zerolog.Logger) *models.WeeklySchedule {
	data, ok := readDocument(path, logger, "schedule")
	if !ok {
		return nil
	}
	var doc models.WeeklySchedule
	if err := yaml.Unmarshal(data, &doc); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("schedule document malformed, ignoring it")
		return nil
	}
	return &doc
}

// LoadGoalsDoc reads the optimization goals document, a list of goal
// objects.
func LoadGoalsDoc(path string, logger zerolog.Logger) []models.Goal {
	data, ok := readDocument(path, logger, "goals")
	if !ok {
		return nil
	}
	var goals []models.Goal
	if err := yaml.Unmarshal(data, &goals); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("goals document malformed, ignoring it")
		return nil
	}
	return goals
}

// LoadRulesDoc reads the dependency rules document and compiles it. Read
// and parse failures degrade to an empty document like the other
// loaders; an invalid summary pattern is returned as an error because a
// broken safety rule must never be dropped silently.
func LoadRulesDoc(path string, logger zerolog.Logger) (models.DependencyRulesDoc, *coverage.Ruleset, error) {
	var doc models.DependencyRulesDoc
	if data, ok := readDocument(path, logger, "dependency rules"); ok {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("dependency rules document malformed, ignoring it")
			doc = models.DependencyRulesDoc{}
		}
	}
	rules, err := coverage.CompileRules(doc)
	if err != nil {
		return models.DependencyRulesDoc{}, nil, err
	}
	return doc, rules, nil
}

// LoadLinks reads previously recorded source-to-coverage links for
// lifecycle reconciliation.
func LoadLinks(path string, logger zerolog.Logger) []models.CoverageLink {
	data, ok := readDocument(path, logger, "coverage links")
	if !ok {
		return nil
	}
	var links []models.CoverageLink
	if err := yaml.Unmarshal(data, &links); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("coverage links document malformed, ignoring it")
		return nil
	}
	return links
}

// LoadInventory reads the calendar inventory used to validate rule
// references.
func LoadInventory(path string, logger zerolog.Logger) []models.CalendarInfo {
	data, ok := readDocument(path, logger, "calendar inventory")
	if !ok {
		return nil
	}
	var inventory []models.CalendarInfo
	if err := yaml.Unmarshal(data, &inventory); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("calendar inventory malformed, ignoring it")
		return nil
	}
	return inventory
}

func readDocument(path string, logger zerolog.Logger, kind string) ([]byte, bool) {
	if path == "" {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Str("document", kind).Msg("config document unreadable, using defaults")
		return nil, false
	}
	return data, true
}
