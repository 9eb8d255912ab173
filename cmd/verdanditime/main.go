package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/friendsincode/verdandi_time/internal/config"
	"github.com/friendsincode/verdandi_time/internal/ingest"
	"github.com/friendsincode/verdandi_time/internal/logging"
	"github.com/friendsincode/verdandi_time/internal/models"
	"github.com/friendsincode/verdandi_time/internal/telemetry"
	"github.com/friendsincode/verdandi_time/internal/version"
)

var (
	logger zerolog.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "verdanditime",
	Short: "Verdandi Time - personal time accounting and planning engine",
	Long: "Verdandi Time analyzes calendar event snapshots: free/busy gaps, double-bookings,\n" +
		"flexible slots, goal allocation proposals and dependency coverage checks.\n" +
		"All input is local files; reports go to stdout or a file.",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("verdanditime %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration (called by commands that need it)
func loadConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger = logging.Setup(cfg.Environment)
	return nil
}

// applyTimezone overrides the configured zone when the flag is set.
func applyTimezone(zone string) error {
	if zone == "" {
		return nil
	}
	if _, err := time.LoadLocation(zone); err != nil {
		return fmt.Errorf("--timezone %q is not a valid IANA zone: %w", zone, err)
	}
	cfg.Timezone = zone
	return nil
}

// initTracing sets up the tracer provider for commands that run the
// analyzer. The returned shutdown func flushes batched spans.
func initTracing(ctx context.Context) (func(), error) {
	tracerProvider, err := telemetry.InitTracer(ctx, telemetry.TracerConfig{
		ServiceName:    "verdandi-time",
		ServiceVersion: version.Version,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TracingEnabled,
		SampleRate:     cfg.TracingSampleRate,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize tracer: %w", err)
	}
	return func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown tracer provider")
		}
	}, nil
}

// resolveWindow turns --from/--to date values into a half-open window in
// the configured location. An empty from means today's midnight; an
// empty to means from plus the configured window length; --to itself is
// inclusive.
func resolveWindow(from, to string) (time.Time, time.Time, error) {
	loc := cfg.Location()

	var start time.Time
	if from == "" {
		now := time.Now().In(loc)
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	} else {
		parsed, err := time.ParseInLocation("2006-01-02", from, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse --from: %w", err)
		}
		start = parsed
	}

	var end time.Time
	if to == "" {
		end = start.AddDate(0, 0, cfg.WindowDays)
	} else {
		parsed, err := time.ParseInLocation("2006-01-02", to, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse --to: %w", err)
		}
		end = parsed.AddDate(0, 0, 1)
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("analysis window ends before it starts (%s .. %s)",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return start, end, nil
}

// loadEvents reads every snapshot path, dispatching on extension: .ics
// files go through the iCalendar adapter (labelled with the given
// account and the file's base name as calendar id), anything else is
// parsed as an events JSON array.
func loadEvents(paths []string, account string, windowStart, windowEnd time.Time) ([]models.Event, error) {
	var events []models.Event
	for _, path := range paths {
		if strings.EqualFold(filepath.Ext(path), ".ics") {
			evs, err := ingest.LoadEventsICS(path, ingest.ICSOptions{
				Account:     account,
				Calendar:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
				WindowStart: windowStart,
				WindowEnd:   windowEnd,
				Location:    cfg.Location(),
			}, logger)
			if err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
			events = append(events, evs...)
			continue
		}

		evs, err := ingest.LoadEventsJSON(path, logger)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		events = append(events, evs...)
	}
	return events, nil
}

// eventsPaths falls back to the configured default when no --events flag
// was given.
func eventsPaths(flagged []string) ([]string, error) {
	if len(flagged) > 0 {
		return flagged, nil
	}
	if cfg.EventsPath != "" {
		return []string{cfg.EventsPath}, nil
	}
	return nil, fmt.Errorf("no events snapshot: pass --events or set VERDANDI_EVENTS_PATH")
}

// pathOrDefault prefers the flag value over the configured default.
func pathOrDefault(flagged, configured string) string {
	if flagged != "" {
		return flagged
	}
	return configured
}

// writeOutput sends the writer function's output to the given file, or
// stdout when path is empty.
func writeOutput(path string, write func(w *os.File) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return err
	}
	return f.Close()
}
