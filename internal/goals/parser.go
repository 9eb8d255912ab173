/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package goals turns free-text goal statements into structured goals.
// Parsing is a deterministic pattern matcher with a fixed precedence
// order, not language understanding: the same line always produces the
// same goal.
package goals

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/friendsincode/verdandi_time/internal/models"
)

const (
	defaultCategory = "personal"
	defaultPriority = 3
)

// Matching order is load-bearing: ranges before single per-session
// durations, per-session before bare durations, hours before minutes.
// Each value comes from the first match of its pattern on whatever the
// earlier patterns left behind.
var (
	bulletPattern  = regexp.MustCompile(`^(?:[-*•]+|\d+[.)])\s*`)
	outcomePattern = regexp.MustCompile(`(?i)\b(?:focus on|work on|complete)\s+(.+?)\s+(?:to\s+)?(?:achieve|finish|complete)\s+(.+?)(?:,?\s*about\s+(\d+(?:\.\d+)?)\s*h(?:ou)?rs?)?\s*\.?\s*$`)
	rangePattern   = regexp.MustCompile(`(?i)\b(\d+)\s*(?:-|–|to)\s*(\d+)[\s-]*(minutes?|mins?|hours?|hrs?)\b`)
	sessionPattern = regexp.MustCompile(`(?i)\b(\d+)[\s-]*(minutes?|mins?|hours?|hrs?)\s*(?:each|per\s+session|sessions?)\b`)
	countPattern   = regexp.MustCompile(`(?i)\b(\d+)\s*(?:x\b|times\b)`)
	hoursPattern   = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*h(?:ou)?rs?\b`)
	minutesPattern = regexp.MustCompile(`(?i)\b(\d+)\s*m(?:in(?:ute)?s?)?\b`)
	dayPartPattern = regexp.MustCompile(`(?i)\b(morning|afternoon|evening)s?\b`)
)

var fillerWords = map[string]bool{
	"i": true, "want": true, "need": true, "like": true, "to": true,
	"a": true, "an": true, "the": true, "of": true, "for": true,
	"per": true, "each": true, "every": true, "at": true, "least": true,
	"about": true, "this": true, "that": true, "week": true,
	"weekly": true, "day": true, "daily": true, "session": true,
	"sessions": true, "time": true, "times": true, "spend": true,
	"more": true, "do": true, "and": true, "with": true, "in": true,
	"my": true, "get": true, "some": true,
}

// ParseText extracts one goal per parseable line. Lines with no
// extractable duration are dropped; outcome statements win over time
// parsing.
func ParseText(text string) []models.Goal {
	var parsed []models.Goal
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		line = bulletPattern.ReplaceAllString(line, "")
		if line == "" {
			continue
		}
		if goal, ok := parseLine(line); ok {
			parsed = append(parsed, goal)
		}
	}
	return parsed
}

func parseLine(line string) (models.Goal, bool) {
	if m := outcomePattern.FindStringSubmatch(line); m != nil {
		return outcomeGoal(line, m), true
	}
	return timeGoal(line)
}

func outcomeGoal(line string, m []string) models.Goal {
	estimated := 0
	if m[3] != "" {
		if h, err := strconv.ParseFloat(m[3], 64); err == nil {
			estimated = int(math.Round(h * 60))
		}
	}
	project := m[1]
	for _, re := range []*regexp.Regexp{hoursPattern, minutesPattern, countPattern, dayPartPattern} {
		project = re.ReplaceAllString(project, " ")
	}
	name := activityName(project)
	if name == "" {
		name = "Goal"
	}
	return models.Goal{
		Kind:             models.GoalKindOutcome,
		ID:               slugify(name),
		Name:             name,
		Description:      line,
		EstimatedMinutes: estimated,
		Category:         defaultCategory,
		Priority:         defaultPriority,
	}
}

func timeGoal(line string) (models.Goal, bool) {
	rest := line
	var (
		total      int
		minSession int
		maxSession int
		sessions   int
		hasRange   bool
		hasSession bool
		hasBare    bool
	)

	if m := rangePattern.FindStringSubmatch(rest); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if unitIsHours(m[3]) {
			lo, hi = lo*60, hi*60
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		minSession, maxSession = lo, hi
		hasRange = true
		rest = strings.Replace(rest, m[0], " ", 1)
	} else if m := sessionPattern.FindStringSubmatch(rest); m != nil {
		per, _ := strconv.Atoi(m[1])
		if unitIsHours(m[2]) {
			per *= 60
		}
		minSession, maxSession = per, per
		hasSession = true
		rest = strings.Replace(rest, m[0], " ", 1)
	}

	if m := countPattern.FindStringSubmatch(rest); m != nil {
		sessions, _ = strconv.Atoi(m[1])
		rest = strings.Replace(rest, m[0], " ", 1)
	}

	if m := hoursPattern.FindStringSubmatch(rest); m != nil {
		h, _ := strconv.ParseFloat(m[1], 64)
		total = int(math.Round(h * 60))
		hasBare = true
		rest = strings.Replace(rest, m[0], " ", 1)
	} else if m := minutesPattern.FindStringSubmatch(rest); m != nil {
		total, _ = strconv.Atoi(m[1])
		hasBare = true
		rest = strings.Replace(rest, m[0], " ", 1)
	}

	preference := models.DayPart("")
	if m := dayPartPattern.FindStringSubmatch(rest); m != nil {
		preference = models.DayPart(strings.ToLower(m[1]))
		rest = strings.Replace(rest, m[0], " ", 1)
	}

	if !hasRange && !hasSession && !hasBare {
		return models.Goal{}, false
	}

	// A session count recomputes the total: an explicit per-session
	// duration multiplies directly, a bare duration next to a count reads
	// as per-session.
	if sessions > 0 && hasSession {
		total = sessions * minSession
	} else if sessions > 0 && hasBare && !hasRange {
		minSession, maxSession = total, total
		hasSession = true
		total = sessions * total
	}

	// Sweep leftover time tokens so they never leak into the name.
	for _, re := range []*regexp.Regexp{hoursPattern, minutesPattern, countPattern, dayPartPattern} {
		rest = re.ReplaceAllString(rest, " ")
	}

	name := activityName(rest)
	if name == "" {
		name = "Goal"
	}

	goal := models.Goal{
		Kind:         models.GoalKindTime,
		ID:           slugify(name),
		Name:         name,
		TotalMinutes: total,
		Preference:   preference,
		Category:     defaultCategory,
		Priority:     defaultPriority,
	}
	if hasRange || hasSession {
		goal.MinSessionMinutes = intPtr(minSession)
		goal.MaxSessionMinutes = intPtr(maxSession)
	}
	if sessions > 0 {
		goal.SessionsPerWeek = intPtr(sessions)
	}
	return goal, true
}

func unitIsHours(unit string) bool {
	return strings.HasPrefix(strings.ToLower(unit), "h")
}

// activityName reduces a line remainder to the activity it names: words
// survive punctuation trimming and the filler list, and the first rune is
// upper-cased.
func activityName(remainder string) string {
	var kept []string
	for _, word := range strings.Fields(remainder) {
		word = strings.Trim(word, ",.;:!?()[]\"'")
		if word == "" || fillerWords[strings.ToLower(word)] {
			continue
		}
		kept = append(kept, word)
	}
	if len(kept) == 0 {
		return ""
	}
	name := strings.Join(kept, " ")
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}
	return result.String()
}

func intPtr(v int) *int { return &v }
