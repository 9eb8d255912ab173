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

// Validate flags
var (
	validateRules     string
	validateInventory string
	validateOut       string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate dependency rules against a calendar inventory",
	Long: `Compiles the dependency rules (catching bad summary patterns) and cross
checks every calendar reference against the given account inventory.
Issues are written as JSON; any issue makes the command exit non-zero,
so it can gate config changes in scripts.

Examples:
  verdanditime validate --rules rules.yaml --inventory calendars.yaml
  verdanditime validate --rules rules.yaml --inventory calendars.yaml --out issues.json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateRules, "rules", "", "Dependency rules document (overrides VERDANDI_RULES_PATH)")
	validateCmd.Flags().StringVar(&validateInventory, "inventory", "", "Calendar inventory file (required)")
	validateCmd.Flags().StringVar(&validateOut, "out", "", "Issues file (default: stdout)")
	validateCmd.MarkFlagRequired("inventory")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	rulesPath := pathOrDefault(validateRules, cfg.RulesPath)
	if rulesPath == "" {
		return fmt.Errorf("no rules document: pass --rules or set VERDANDI_RULES_PATH")
	}
	doc, _, err := config.LoadRulesDoc(rulesPath, logger)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}

	inventory := config.LoadInventory(validateInventory, logger)
	issues := coverage.ValidateInventory(doc, inventory)
	if issues == nil {
		issues = []models.ConfigIssue{}
	}

	if err := writeOutput(validateOut, func(w *os.File) error {
		data, err := json.MarshalIndent(issues, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal issues: %w", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	}); err != nil {
		return err
	}

	if len(issues) > 0 {
		return fmt.Errorf("%d configuration issue(s) found", len(issues))
	}
	logger.Info().Int("rules", len(doc.Rules)).Msg("rules validate cleanly")
	return nil
}
