package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"scoreboard/internal/config"
	"scoreboard/internal/export"
	"scoreboard/internal/logging"
	"scoreboard/internal/observability"
	"scoreboard/internal/service"
	"scoreboard/internal/source"
	"scoreboard/internal/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file (default ~/.scoreboard/config.json)")
	exportDir := flag.String("export", "", "write records.parquet and leaderboard.parquet to this directory instead of starting the TUI")
	todayFlag := flag.String("today", "", "reference date YYYY-MM-DD for week and trend figures (default: today)")
	sourceFlag := flag.String("source", "", "override source.location from the config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	path := *configPath
	if path == "" {
		var err error
		if path, err = config.Path(); err != nil {
			return err
		}
	}
	cfg, err := config.LoadFrom(path)
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(path); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		fmt.Printf("\nPlease edit the config file at:\n  %s\n\n", path)
		fmt.Println("Set source.location to the URL or path of your activity export.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *sourceFlag != "" {
		cfg.Source.Location = *sourceFlag
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s\n", path)
		return nil
	}

	today := time.Now()
	if *todayFlag != "" {
		if today, err = time.Parse(config.DateLayout, *todayFlag); err != nil {
			return fmt.Errorf("-today must be YYYY-MM-DD, got %q", *todayFlag)
		}
	}

	// The TUI owns the terminal, so logs only reach stdout in export mode
	closer := logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.Stdout && *exportDir != "",
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	defer closer.Close()

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := observability.Serve(ctx, cfg.Metrics.Addr); err != nil {
				logrus.Errorf("metrics server: %s", err)
			}
		}()
	}

	cal, err := cfg.Calendar()
	if err != nil {
		return err
	}

	src, err := source.Open(source.Options{
		Location: cfg.Source.Location,
		Table:    cfg.Source.SQLiteTable,
		Token:    cfg.Source.Token,
	})
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}

	svc := service.NewScoreboardService(src, cal, service.Options{
		RunningCategory: cfg.Competition.RunningCategory,
		Timeout:         cfg.Timeout(),
	})

	if *exportDir != "" {
		return runExport(ctx, svc, today, *exportDir)
	}

	// Launch TUI
	app := tui.NewApp(ctx, svc, cfg.Competition.Name, today, tui.NewUnits(cfg.Display))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func runExport(ctx context.Context, svc *service.ScoreboardService, today time.Time, dir string) error {
	report, err := svc.BuildReport(ctx, today)
	if err != nil {
		return err
	}

	if err := export.WriteDir(dir, report.Records, report.Leaderboard); err != nil {
		return fmt.Errorf("exporting: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"dir":          dir,
		"records":      len(report.Records),
		"participants": len(report.Leaderboard.Rows),
	}).Info("parquet export written")
	fmt.Printf("Wrote %d records and %d leaderboard rows to %s\n",
		len(report.Records), len(report.Leaderboard.Rows), dir)
	return nil
}
