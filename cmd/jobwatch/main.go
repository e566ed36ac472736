package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/waabox/jobwatch/internal/config"
	"github.com/waabox/jobwatch/internal/domain"
	"github.com/waabox/jobwatch/internal/logging"
	"github.com/waabox/jobwatch/internal/metrics"
	"github.com/waabox/jobwatch/internal/monitor"
	"github.com/waabox/jobwatch/internal/report"
	"github.com/waabox/jobwatch/internal/scheduler"
	"github.com/waabox/jobwatch/internal/tui"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

func main() {
	versionFlag := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", config.DefaultConfigPath(), "path to the TOML config file")
	initConfig := flag.Bool("init-config", false, "write a config file with the defaults and exit")
	logFile := flag.String("file", "", "job log to analyse (overrides log_file)")
	outputDir := flag.String("out-dir", "", "directory for report files (overrides output_dir)")
	format := flag.String("format", "", "stdout format: text, table, json, yaml (overrides format)")
	schedule := flag.String("schedule", "", "cron schedule with seconds for repeated runs (overrides schedule)")
	metricsFile := flag.String("metrics", "", "Prometheus textfile to write after each run (overrides metrics_file)")
	warning := flag.Duration("warning", 0, "warning threshold (overrides thresholds.warning)")
	errorThreshold := flag.Duration("error", 0, "error threshold (overrides thresholds.error)")
	interactive := flag.Bool("tui", false, "browse the report interactively")
	flag.Parse()
	if *versionFlag {
		fmt.Println("jobwatch", version)
		os.Exit(0)
	}

	if *initConfig {
		if err := config.Save(*configPath, config.Default()); err != nil {
			fmt.Fprintf(os.Stderr, "error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Config written to %s\n", *configPath)
		os.Exit(0)
	}

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg, *logFile, *outputDir, *format, *schedule, *metricsFile, *warning, *errorThreshold)

	thresholds, err := cfg.AnalyzerThresholds()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error in config: %v\n", err)
		os.Exit(1)
	}
	renderer, err := report.DefaultRegistry().Lookup(cfg.FormatOrDefault())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error in config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg.LogLevelOrDefault())
	var m *metrics.Metrics
	if cfg.MetricsFile != "" {
		m = metrics.New()
	}
	mon := monitor.New(monitor.Options{
		LogFile:     cfg.LogFileOrDefault(),
		OutputDir:   cfg.OutputDirOrDefault(),
		MetricsFile: cfg.MetricsFile,
		Thresholds:  thresholds,
	}, logger, m)

	if *interactive {
		tui.Run(mon, cfg.RefreshIntervalOrDefault())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := &printingRunner{monitor: mon, renderer: renderer, out: os.Stdout}

	if cfg.Schedule == "" {
		_, err := runner.Run(ctx, time.Now())
		stop()
		os.Exit(exitCode(err, cfg.LogFileOrDefault()))
	}

	sched := scheduler.New(ctx, runner, logger)
	if err := sched.Start(cfg.Schedule); err != nil {
		fmt.Fprintf(os.Stderr, "error in schedule %q: %v\n", cfg.Schedule, err)
		os.Exit(1)
	}
	<-ctx.Done()
	sched.Stop()
}

// applyFlags overrides config values with the flags that were given.
func applyFlags(cfg *config.Config, logFile, outputDir, format, schedule, metricsFile string, warning, errorThreshold time.Duration) {
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if format != "" {
		cfg.Format = format
	}
	if schedule != "" {
		cfg.Schedule = schedule
	}
	if metricsFile != "" {
		cfg.MetricsFile = metricsFile
	}
	if warning > 0 {
		cfg.Thresholds.Warning = warning
	}
	if errorThreshold > 0 {
		cfg.Thresholds.Error = errorThreshold
	}
}

// printingRunner runs a batch and renders it to out.
type printingRunner struct {
	monitor  *monitor.Monitor
	renderer report.Renderer
	out      io.Writer
}

func (r *printingRunner) Run(ctx context.Context, now time.Time) (domain.Batch, error) {
	batch, err := r.monitor.Run(ctx, now)
	if err != nil && len(batch.Messages) == 0 {
		return batch, err
	}
	if renderErr := r.renderer.Render(r.out, batch); renderErr != nil {
		return batch, errors.Join(err, fmt.Errorf("rendering report: %w", renderErr))
	}
	return batch, err
}

// exitCode reports a single run's outcome on stderr and returns the process exit code.
func exitCode(err error, logFile string) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, monitor.ErrNoRecords):
		fmt.Fprintln(os.Stderr, "Log file is empty or contains no valid entries")
		return 0
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(os.Stderr, "Log file %s not found. Please ensure the file exists.\n", logFile)
		return 1
	default:
		fmt.Fprintf(os.Stderr, "An error occurred while processing the log file: %v\n", err)
		return 1
	}
}
