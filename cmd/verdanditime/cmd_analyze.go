/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/friendsincode/verdandi_time/internal/analyzer"
	"github.com/friendsincode/verdandi_time/internal/config"
	"github.com/friendsincode/verdandi_time/internal/export"
)

// Analyze flags
var (
	analyzeEvents   []string
	analyzeSchedule string
	analyzeGoals    string
	analyzeRules    string
	analyzeLinks    string
	analyzeFrom     string
	analyzeTo       string
	analyzeTimezone string
	analyzeAccount  string
	analyzeOut      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full analysis and emit a report",
	Long: `Runs every analysis phase over an event snapshot: per-calendar time
accounting, free gaps, overlap groups, flex slots, goal allocation and
dependency coverage. The report is written as JSON to stdout (or --out).

Snapshots are JSON event arrays or exported .ics files; --events may be
repeated to merge several. Without --from the window starts today and
spans the configured number of days.

Examples:
  verdanditime analyze --events week.json
  verdanditime analyze --events work.ics --events home.ics --from 2026-03-02 --to 2026-03-08
  verdanditime analyze --events week.json --goals goals.yaml --rules rules.yaml --out report.json`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringArrayVar(&analyzeEvents, "events", nil, "Events snapshot path (.json or .ics, repeatable)")
	analyzeCmd.Flags().StringVar(&analyzeSchedule, "schedule", "", "Weekly schedule document (overrides VERDANDI_SCHEDULE_PATH)")
	analyzeCmd.Flags().StringVar(&analyzeGoals, "goals", "", "Goals document (overrides VERDANDI_GOALS_PATH)")
	analyzeCmd.Flags().StringVar(&analyzeRules, "rules", "", "Dependency rules document (overrides VERDANDI_RULES_PATH)")
	analyzeCmd.Flags().StringVar(&analyzeLinks, "links", "", "Coverage links file for lifecycle reconciliation")
	analyzeCmd.Flags().StringVar(&analyzeFrom, "from", "", "Window start date, YYYY-MM-DD (default: today)")
	analyzeCmd.Flags().StringVar(&analyzeTo, "to", "", "Window end date, YYYY-MM-DD inclusive (default: from + window days)")
	analyzeCmd.Flags().StringVar(&analyzeTimezone, "timezone", "", "IANA zone overriding VERDANDI_TIMEZONE")
	analyzeCmd.Flags().StringVar(&analyzeAccount, "account", "local", "Account label for .ics snapshots")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "Report file (default: stdout)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	if err := applyTimezone(analyzeTimezone); err != nil {
		return err
	}

	ctx := context.Background()
	shutdown, err := initTracing(ctx)
	if err != nil {
		return err
	}
	defer shutdown()

	windowStart, windowEnd, err := resolveWindow(analyzeFrom, analyzeTo)
	if err != nil {
		return err
	}

	paths, err := eventsPaths(analyzeEvents)
	if err != nil {
		return err
	}
	events, err := loadEvents(paths, analyzeAccount, windowStart, windowEnd)
	if err != nil {
		return err
	}

	in := analyzer.Inputs{
		Events:   events,
		Schedule: config.LoadScheduleDoc(pathOrDefault(analyzeSchedule, cfg.SchedulePath), logger),
		Goals:    config.LoadGoalsDoc(pathOrDefault(analyzeGoals, cfg.GoalsPath), logger),
	}

	if rulesPath := pathOrDefault(analyzeRules, cfg.RulesPath); rulesPath != "" {
		_, rules, err := config.LoadRulesDoc(rulesPath, logger)
		if err != nil {
			return fmt.Errorf("load rules: %w", err)
		}
		in.Rules = rules
		in.Links = config.LoadLinks(analyzeLinks, logger)
	}

	report := analyzer.New(cfg, logger).Analyze(ctx, in, windowStart, windowEnd)

	return writeOutput(analyzeOut, func(w *os.File) error {
		return export.WriteReportJSON(w, &report)
	})
}
