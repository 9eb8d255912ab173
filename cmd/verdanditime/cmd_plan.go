/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/friendsincode/verdandi_time/internal/analyzer"
	"github.com/friendsincode/verdandi_time/internal/config"
	"github.com/friendsincode/verdandi_time/internal/export"
	"github.com/friendsincode/verdandi_time/internal/goals"
)

// Plan flags
var (
	planEvents       []string
	planSchedule     string
	planGoals        string
	planGoalsText    string
	planFrom         string
	planTo           string
	planTimezone     string
	planAccount      string
	planOut          string
	planICal         string
	planCalendarName string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Allocate goal time into free slots and emit proposals",
	Long: `Computes flex slots from the event snapshot and greedily allocates goal
minutes into them. Goals come from a goals document or from plain text
lines ("practice guitar 3 hours", "workout 3x this week, 45 min each").

The resulting report (goals, proposals, score) is written as JSON to
stdout or --out. With --ical the proposed blocks are additionally
rendered as a draft iCalendar file to import by hand; when the path is
an existing directory a dated filename is derived from --calendar-name.

Examples:
  verdanditime plan --events week.json --goals goals.yaml
  verdanditime plan --events week.json --goals-text "deep work 10 hours" --ical drafts/
  verdanditime plan --events home.ics --goals goals.yaml --ical plan.ics --calendar-name "Next Week"`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringArrayVar(&planEvents, "events", nil, "Events snapshot path (.json or .ics, repeatable)")
	planCmd.Flags().StringVar(&planSchedule, "schedule", "", "Weekly schedule document (overrides VERDANDI_SCHEDULE_PATH)")
	planCmd.Flags().StringVar(&planGoals, "goals", "", "Goals document (overrides VERDANDI_GOALS_PATH)")
	planCmd.Flags().StringVar(&planGoalsText, "goals-text", "", "Inline goal lines, one per line (replaces --goals)")
	planCmd.Flags().StringVar(&planFrom, "from", "", "Window start date, YYYY-MM-DD (default: today)")
	planCmd.Flags().StringVar(&planTo, "to", "", "Window end date, YYYY-MM-DD inclusive (default: from + window days)")
	planCmd.Flags().StringVar(&planTimezone, "timezone", "", "IANA zone overriding VERDANDI_TIMEZONE")
	planCmd.Flags().StringVar(&planAccount, "account", "local", "Account label for .ics snapshots")
	planCmd.Flags().StringVar(&planOut, "out", "", "Report file (default: stdout)")
	planCmd.Flags().StringVar(&planICal, "ical", "", "Write proposals as an iCalendar draft to this file or directory")
	planCmd.Flags().StringVar(&planCalendarName, "calendar-name", "Verdandi plan", "Calendar name embedded in the iCal draft")
}

func runPlan(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	if err := applyTimezone(planTimezone); err != nil {
		return err
	}

	ctx := context.Background()
	shutdown, err := initTracing(ctx)
	if err != nil {
		return err
	}
	defer shutdown()

	windowStart, windowEnd, err := resolveWindow(planFrom, planTo)
	if err != nil {
		return err
	}

	paths, err := eventsPaths(planEvents)
	if err != nil {
		return err
	}
	events, err := loadEvents(paths, planAccount, windowStart, windowEnd)
	if err != nil {
		return err
	}

	in := analyzer.Inputs{
		Events:   events,
		Schedule: config.LoadScheduleDoc(pathOrDefault(planSchedule, cfg.SchedulePath), logger),
	}
	if planGoalsText != "" {
		in.Goals = goals.ParseText(planGoalsText)
	} else {
		in.Goals = config.LoadGoalsDoc(pathOrDefault(planGoals, cfg.GoalsPath), logger)
	}
	if len(in.Goals) == 0 {
		return fmt.Errorf("no goals to plan: pass --goals or --goals-text")
	}

	report := analyzer.New(cfg, logger).Analyze(ctx, in, windowStart, windowEnd)

	if planICal != "" {
		target := planICal
		if info, err := os.Stat(target); err == nil && info.IsDir() {
			target = filepath.Join(target, export.ProposalsFilename(planCalendarName, windowStart, windowEnd))
		}
		if err := writeOutput(target, func(w *os.File) error {
			return export.WriteProposalsICal(w, planCalendarName, report.Proposals)
		}); err != nil {
			return fmt.Errorf("write ical draft: %w", err)
		}
		logger.Info().Str("path", target).Int("proposals", len(report.Proposals)).Msg("ical draft written")
	}

	return writeOutput(planOut, func(w *os.File) error {
		return export.WriteReportJSON(w, &report)
	})
}
