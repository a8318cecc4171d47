package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"drecli/internal/config"
	"drecli/internal/dre"
	"drecli/internal/exporter"
	"drecli/internal/infrastructure"
	"drecli/internal/services"
	"drecli/pkg/contracts"
)

// options holds the parsed command line
type options struct {
	configFile string
	workbook   string
	sheet      string
	months     []string
	categories []string
	registry   string
	outDir     string
	style      exporter.Style
	summary    bool
	version    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		slog.Error("Report generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var (
		opts       options
		months     string
		categories string
		style      string
	)

	fs := flag.NewFlagSet("dre-report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configFile, "config", "", "config file (defaults to dre.yaml or configs/dre.yaml when present)")
	fs.StringVar(&opts.workbook, "workbook", "", "statement workbook (.xlsx)")
	fs.StringVar(&opts.sheet, "sheet", "", "sheet holding the statement")
	fs.StringVar(&months, "months", "", "comma-separated months to report, e.g. Jan,Fev,Mar (defaults to report.default_periods)")
	fs.StringVar(&categories, "categories", "", "comma-separated categories to render (defaults to all)")
	fs.StringVar(&opts.registry, "registry", "", "YAML file overriding the built-in categories")
	fs.StringVar(&opts.outDir, "out", "", "output directory (defaults to report.output_dir)")
	fs.StringVar(&style, "style", "br", "number style: br or plain")
	fs.BoolVar(&opts.summary, "summary", false, "also print the report to the terminal")
	fs.BoolVar(&opts.version, "version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	parsed, ok := exporter.ParseStyle(style)
	if !ok {
		return opts, fmt.Errorf("unknown style %q, want br or plain", style)
	}
	opts.style = parsed
	opts.months = splitList(months)
	opts.categories = splitList(categories)
	return opts, nil
}

// loadConfig reads the configuration and applies the command line on top.
func loadConfig(opts options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = config.LoadFile(opts.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Paths given on the command line are relative to the working
	// directory, not to the config file.
	if opts.workbook != "" {
		cfg.Statement.Workbook = absPath(opts.workbook)
	}
	if opts.sheet != "" {
		cfg.Statement.Sheet = opts.sheet
	}
	if opts.registry != "" {
		cfg.Report.CategoriesFile = absPath(opts.registry)
	}
	if opts.outDir != "" {
		cfg.Report.OutputDir = absPath(opts.outDir)
	}
	return cfg, nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}
	if opts.version {
		fmt.Fprintln(stdout, contracts.Build())
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()
	ctx = infrastructure.EnsureTraceID(ctx)

	logger.InfoContext(ctx, "Generating DRE report",
		slog.String("version", contracts.Version),
		slog.String("workbook", cfg.WorkbookPath()),
		slog.String("output_dir", cfg.OutputDir()))

	written, report, err := generate(ctx, cfg, opts, logger)
	if err != nil {
		return err
	}

	for _, path := range written {
		fmt.Fprintln(stdout, path)
	}
	if opts.summary {
		text, err := exporter.RenderTerminal(report.Markdown(opts.style), 0)
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, text)
	}
	logger.InfoContext(ctx, "DRE report generated", slog.Int("files", len(written)))
	return nil
}

// generate writes one CSV per category plus statistics.csv, overview.csv
// and the full report as report.md and report.html. It returns the paths
// written and the report.
func generate(ctx context.Context, cfg *config.Config, opts options, logger *slog.Logger) ([]string, *exporter.Report, error) {
	svc, err := services.NewReportServiceFromConfig(ctx, cfg, nil, logger)
	if err != nil {
		return nil, nil, err
	}

	views, err := svc.DeriveAll(ctx, opts.months, opts.categories)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to derive categories: %w", err)
	}

	writer := exporter.NewCSVWriter(cfg.OutputDir(), logger)
	written := make([]string, 0, len(views)+4)
	stats := make([]dre.StatisticsRecord, 0, len(views))

	for _, view := range views {
		headers, records := exporter.DerivedViewRecords(view, opts.style)
		path, err := writer.WriteTable(view.Category.Name+".csv", opts.style, headers, records)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to write %s: %w", view.Category.Name, err)
		}
		written = append(written, path)
		stats = append(stats, view.Statistics)

		logStatistics(ctx, logger, view)
	}

	headers, records := exporter.StatisticsRecords(stats, opts.style)
	path, err := writer.WriteTable("statistics.csv", opts.style, headers, records)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to write statistics: %w", err)
	}
	written = append(written, path)

	overview, err := svc.Overview(ctx, opts.months, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute overview: %w", err)
	}
	headers, records = exporter.MeasureRecords(overview.Measures, opts.style)
	path, err = writer.WriteTable("overview.csv", opts.style, headers, records)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to write overview: %w", err)
	}
	written = append(written, path)

	report := &exporter.Report{
		Title:    "DRE",
		Periods:  overview.Periods,
		Base:     overview.Base,
		Views:    views,
		Measures: overview.Measures,
	}
	md := report.Markdown(opts.style)
	if path, err = writer.WriteFile("report.md", []byte(md)); err != nil {
		return nil, nil, fmt.Errorf("failed to write markdown report: %w", err)
	}
	written = append(written, path)

	page, err := exporter.RenderHTML(report.Title, md)
	if err != nil {
		return nil, nil, err
	}
	if path, err = writer.WriteFile("report.html", page); err != nil {
		return nil, nil, fmt.Errorf("failed to write HTML report: %w", err)
	}
	written = append(written, path)

	return written, report, nil
}

func logStatistics(ctx context.Context, logger *slog.Logger, view *dre.DerivedView) {
	s := view.Statistics
	attrs := []any{
		slog.String("category", view.Category.Name),
		slog.String("metric", s.Metric),
		slog.Int("count", s.Count),
		slog.Any("pruned", view.Pruned),
	}
	// slog's JSON handler cannot encode NaN.
	for _, f := range []struct {
		key string
		v   float64
	}{{"best", s.Best}, {"worst", s.Worst}, {"mean", s.Mean}, {"spread", s.Spread}} {
		if !dre.IsUndefined(f.v) {
			attrs = append(attrs, slog.Float64(f.key, f.v))
		}
	}
	logger.InfoContext(ctx, "category statistics", attrs...)
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
