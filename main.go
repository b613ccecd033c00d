package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"icsgen/src-server/ical"
	"icsgen/src-server/loader"
	"icsgen/src-server/metric"
	"icsgen/src-server/utils"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v2"
)

var logLevel = new(slog.LevelVar)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Debug(err.Error())
	}
	// an invalid value is reported by utils.NewConfig
	level, _ := utils.LogLevelFromEnv()
	logLevel.Set(level)
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	app := &cli.App{
		Name:  "icsgen",
		Usage: "Build iCalendar (.ics) files from JSON or YAML calendar documents.",
		Commands: []*cli.Command{
			renderCommand(),
			snapshotCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("icsgen failed", "error", err)
		os.Exit(1)
	}
}

func inputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Usage:    "calendar document (.json, .yaml or .yml)",
		Required: true,
	}
}

func timezoneFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "timezone",
		Usage: "timezone for calendars without one, overrides ICSGEN_TIMEZONE",
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Write the calendar document as an iCalendar file.",
		Flags: []cli.Flag{
			inputFlag(),
			timezoneFlag(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file, stdout when empty or `-`",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "write render metrics in the Prometheus text format, e.g. for a node_exporter textfile collector",
			},
		},
		Action: func(c *cli.Context) error {
			metricsPath := c.String("metrics-file")
			if metricsPath == "" {
				return render(c, nil)
			}

			metrics := metric.NewRender()
			err := render(c, metrics)
			if err != nil {
				metrics.Failure(filepath.Base(c.String("input")))
			}
			if writeErr := metrics.WriteToTextfile(metricsPath); writeErr != nil {
				slog.Error("can't write render metrics", "path", metricsPath, "error", writeErr)
			}
			return err
		},
	}
}

// Load, render and write the calendar. metrics may be nil.
func render(c *cli.Context, metrics *metric.Render) error {
	started := time.Now()
	calendar, err := loadCalendar(c)
	if err != nil {
		return err
	}

	output, err := calendar.ToIcal()
	if err != nil {
		return fmt.Errorf("can't render calendar: %w", err)
	}

	path := c.String("output")
	if path == "" || path == "-" {
		if _, err := os.Stdout.WriteString(output); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
			return fmt.Errorf("can't write calendar: %w", err)
		}
		slog.Info("calendar written", "path", path, "events", calendar.Length(), "bytes", len(output))
	}

	if metrics != nil {
		metrics.Success(filepath.Base(c.String("input")), calendar.Length(), len(output), time.Since(started), time.Now())
	}
	return nil
}

func snapshotCommand() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Print the canonical JSON snapshot of the calendar document.",
		Flags: []cli.Flag{
			inputFlag(),
			timezoneFlag(),
		},
		Action: func(c *cli.Context) error {
			calendar, err := loadCalendar(c)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(calendar.ToJSON()); err != nil {
				return fmt.Errorf("can't encode snapshot: %w", err)
			}
			return nil
		},
	}
}

func loadCalendar(c *cli.Context) (*ical.Calendar, error) {
	config, err := utils.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logLevel.Set(config.GetLogLevel())

	if err := config.SetTimezone(c.String("timezone")); err != nil {
		return nil, err
	}

	as := utils.NewAppState(config)
	calendar, err := loader.Load(c.String("input"), as)
	if err != nil {
		return nil, err
	}
	return calendar, nil
}
