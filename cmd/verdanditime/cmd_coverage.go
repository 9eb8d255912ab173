/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/friendsincode/verdandi_time/internal/config"
	"github.com/friendsincode/verdandi_time/internal/coverage"
	"github.com/friendsincode/verdandi_time/internal/models"
)

// Coverage flags
var (
	coverageEvents   []string
	coverageRules    string
	coverageLinks    string
	coverageFrom     string
	coverageTo       string
	coverageTimezone string
	coverageAccount  string
	coverageOut      string
)

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Check dependency coverage rules against a snapshot",
	Long: `Evaluates the dependency rules over the event snapshot and reports
coverage gaps, opt-outs and fulfillments. With --links a previous run's
source-to-coverage links are reconciled: coverage events whose source
has disappeared produce lifecycle proposals (nothing is ever deleted).

Examples:
  verdanditime coverage --events week.json --rules rules.yaml
  verdanditime coverage --events week.json --rules rules.yaml --links links.yaml --out coverage.json`,
	RunE: runCoverage,
}

type coverageOutput struct {
	models.CoverageReport
	Lifecycle []models.CoverageLifecycleProposal `json:"lifecycle,omitempty"`
}

func init() {
	rootCmd.AddCommand(coverageCmd)

	coverageCmd.Flags().StringArrayVar(&coverageEvents, "events", nil, "Events snapshot path (.json or .ics, repeatable)")
	coverageCmd.Flags().StringVar(&coverageRules, "rules", "", "Dependency rules document (overrides VERDANDI_RULES_PATH)")
	coverageCmd.Flags().StringVar(&coverageLinks, "links", "", "Coverage links file for lifecycle reconciliation")
	coverageCmd.Flags().StringVar(&coverageFrom, "from", "", "Window start date, YYYY-MM-DD (default: today)")
	coverageCmd.Flags().StringVar(&coverageTo, "to", "", "Window end date, YYYY-MM-DD inclusive (default: from + window days)")
	coverageCmd.Flags().StringVar(&coverageTimezone, "timezone", "", "IANA zone overriding VERDANDI_TIMEZONE")
	coverageCmd.Flags().StringVar(&coverageAccount, "account", "local", "Account label for .ics snapshots")
	coverageCmd.Flags().StringVar(&coverageOut, "out", "", "Report file (default: stdout)")
}

func runCoverage(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	if err := applyTimezone(coverageTimezone); err != nil {
		return err
	}

	windowStart, windowEnd, err := resolveWindow(coverageFrom, coverageTo)
	if err != nil {
		return err
	}

	rulesPath := pathOrDefault(coverageRules, cfg.RulesPath)
	if rulesPath == "" {
		return fmt.Errorf("no rules document: pass --rules or set VERDANDI_RULES_PATH")
	}
	_, rules, err := config.LoadRulesDoc(rulesPath, logger)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}

	paths, err := eventsPaths(coverageEvents)
	if err != nil {
		return err
	}
	events, err := loadEvents(paths, coverageAccount, windowStart, windowEnd)
	if err != nil {
		return err
	}

	out := coverageOutput{CoverageReport: coverage.Evaluate(events, rules)}
	if coverageLinks != "" {
		out.Lifecycle = coverage.ReconcileLifecycle(events, rules, config.LoadLinks(coverageLinks, logger))
	}

	if len(out.Gaps) > 0 {
		logger.Warn().Int("coverage_gaps", len(out.Gaps)).Msg("coverage gaps detected")
	}

	return writeOutput(coverageOut, func(w *os.File) error {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal coverage report: %w", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	})
}
