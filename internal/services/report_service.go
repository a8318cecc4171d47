package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"drecli/internal/config"
	"drecli/internal/dataprocessing"
	"drecli/internal/dre"
	apierrors "drecli/internal/errors"
	"drecli/internal/infrastructure"
)

// DeriveRequest asks for the derived view of one category over a set of
// periods. Empty Periods means the configured default periods.
type DeriveRequest struct {
	Category    string
	Periods     []string
	Headline    string
	RequireBase bool
	Magnitudes  bool
	// DropEmptyPeriods hides all-zero periods for any category.
	DropEmptyPeriods bool
}

// Overview is the consolidated view of a set of columns over the selected
// periods.
type Overview struct {
	Periods  []string      `json:"periods"`
	Base     string        `json:"base"`
	Measures []dre.Measure `json:"measures"`
}

// StatementInfo describes the statement held by a ReportService.
type StatementInfo struct {
	Source     string
	Periods    int
	Accounts   int
	Categories int
	LoadedAt   time.Time
}

// ReportService answers derived-view queries against one immutable statement.
// It is safe for concurrent use.
type ReportService struct {
	raw            *dre.Table
	assembler      *dre.Assembler
	defaultPeriods []string
	metrics        *infrastructure.BusinessMetrics
	logger         *slog.Logger
	source         string
	loadedAt       time.Time
}

// ReportServiceOptions configures NewReportService.
type ReportServiceOptions struct {
	DefaultPeriods []string
	Metrics        *infrastructure.BusinessMetrics
	Logger         *slog.Logger
	// Source names where the statement came from, for health output.
	Source string
}

// NewReportService checks the registry against the statement and returns a
// service over it. Every category member must exist in raw.
func NewReportService(raw *dre.Table, assembler *dre.Assembler, opts ReportServiceOptions) (*ReportService, error) {
	if raw == nil {
		return nil, ErrNoStatement
	}
	if assembler == nil {
		return nil, fmt.Errorf("%w: nil assembler", ErrInvalidInput)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "report_service")

	if err := assembler.Registry().Validate(raw); err != nil {
		return nil, apierrors.NewConfigError("categories do not match the statement", err)
	}
	if !raw.Has(assembler.Base()) {
		return nil, apierrors.NewConfigError("base column missing from the statement",
			&dre.AccountNotFoundError{Account: assembler.Base()})
	}

	logger.Info("ReportService initialized",
		slog.String("source", opts.Source),
		slog.Int("periods", raw.Len()),
		slog.Int("accounts", raw.Width()),
		slog.Int("categories", assembler.Registry().Len()),
		slog.Any("default_periods", opts.DefaultPeriods))

	return &ReportService{
		raw:            raw,
		assembler:      assembler,
		defaultPeriods: slices.Clone(opts.DefaultPeriods),
		metrics:        opts.Metrics,
		logger:         logger,
		source:         opts.Source,
		loadedAt:       time.Now(),
	}, nil
}

// NewReportServiceFromConfig loads the configured workbook and registry and
// builds a service over them.
func NewReportServiceFromConfig(ctx context.Context, cfg *config.Config, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) (*ReportService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	registry, err := cfg.LoadRegistry()
	if err != nil {
		return nil, apierrors.NewConfigError("failed to load categories", err)
	}

	path := cfg.WorkbookPath()
	raw, err := dataprocessing.LoadStatement(ctx, path, dataprocessing.OptionsFromConfig(cfg.Statement, logger))
	if err != nil {
		return nil, fmt.Errorf("failed to load statement: %w", err)
	}
	metrics.RecordStatementLoad(ctx, raw.Width())

	assembler := dre.NewAssembler(registry, cfg.Report.BaseColumn, logger,
		dre.WithMaxParallel(cfg.Report.MaxParallel))

	return NewReportService(raw, assembler, ReportServiceOptions{
		DefaultPeriods: cfg.Report.DefaultPeriods,
		Metrics:        metrics,
		Logger:         logger,
		Source:         path,
	})
}

// Periods returns the statement's period labels in native order.
func (s *ReportService) Periods() []string {
	return s.raw.Periods()
}

// DefaultPeriods returns the selection used when a request names none.
func (s *ReportService) DefaultPeriods() []string {
	return slices.Clone(s.defaultPeriods)
}

// Base returns the column ratios to base divide by.
func (s *ReportService) Base() string {
	return s.assembler.Base()
}

// Categories returns every registered category in display order.
func (s *ReportService) Categories() []dre.Category {
	return s.assembler.Registry().Categories()
}

// Category returns one registered category.
func (s *ReportService) Category(name string) (dre.Category, error) {
	return s.assembler.Registry().Lookup(name)
}

// Info describes the loaded statement.
func (s *ReportService) Info() StatementInfo {
	return StatementInfo{
		Source:     s.source,
		Periods:    s.raw.Len(),
		Accounts:   s.raw.Width(),
		Categories: s.assembler.Registry().Len(),
		LoadedAt:   s.loadedAt,
	}
}

// Derive computes the derived view of one category.
func (s *ReportService) Derive(ctx context.Context, req DeriveRequest) (*dre.DerivedView, error) {
	periods := s.selection(req.Periods)
	start := time.Now()

	view, err := s.assembler.Assemble(ctx, s.raw, periods, dre.Request{
		Category:         req.Category,
		Headline:         req.Headline,
		RequireBase:      req.RequireBase,
		Magnitudes:       req.Magnitudes,
		DropEmptyPeriods: req.DropEmptyPeriods,
	})
	duration := time.Since(start)

	if err != nil {
		s.metrics.RecordDerivation(ctx, req.Category, duration, 0, err)
		s.logger.WarnContext(ctx, "derivation failed",
			slog.String("category", req.Category),
			slog.Any("periods", periods),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.metrics.RecordDerivation(ctx, req.Category, duration, len(view.Pruned), nil)
	s.logger.DebugContext(ctx, "derivation completed",
		slog.String("category", req.Category),
		slog.Int("rows", view.Table.Len()),
		slog.Duration("duration", duration))
	return view, nil
}

// DeriveAll computes the views of the named categories, or of every
// category when names is empty, in the given order.
func (s *ReportService) DeriveAll(ctx context.Context, periods, names []string) ([]*dre.DerivedView, error) {
	if len(names) == 0 {
		names = s.assembler.Registry().Names()
	}
	periods = s.selection(periods)
	start := time.Now()

	views, err := s.assembler.AssembleAll(ctx, s.raw, periods, dre.RequestsFor(names...))
	duration := time.Since(start)

	if err != nil {
		s.metrics.RecordDerivation(ctx, "batch", duration, 0, err)
		s.logger.WarnContext(ctx, "batch derivation failed",
			slog.Any("categories", names),
			slog.String("error", err.Error()))
		return nil, err
	}

	for _, v := range views {
		s.metrics.RecordDerivation(ctx, v.Category.Name, duration, len(v.Pruned), nil)
	}
	s.logger.InfoContext(ctx, "batch derivation completed",
		slog.Int("categories", len(views)),
		slog.Any("periods", periods),
		slog.Duration("duration", duration))
	return views, nil
}

// Overview totals columns over the selected periods and divides each by the
// base total. With no columns it reports every category's total line.
func (s *ReportService) Overview(ctx context.Context, periods, columns []string) (*Overview, error) {
	periods = s.selection(periods)
	if len(columns) == 0 {
		columns = s.totalLines()
	}

	filtered := dre.SelectPeriods(s.raw, periods)
	measures, err := dre.MeasureTotals(filtered, columns, s.Base())
	if err != nil {
		s.logger.WarnContext(ctx, "overview failed",
			slog.Any("columns", columns),
			slog.String("error", err.Error()))
		return nil, err
	}

	return &Overview{
		Periods:  filtered.Periods(),
		Base:     s.Base(),
		Measures: measures,
	}, nil
}

func (s *ReportService) selection(periods []string) []string {
	if len(periods) == 0 {
		return s.DefaultPeriods()
	}
	return periods
}

// totalLines returns each category's total line once, in registry order.
func (s *ReportService) totalLines() []string {
	var lines []string
	for _, c := range s.assembler.Registry().Categories() {
		if total := c.Total(); !slices.Contains(lines, total) {
			lines = append(lines, total)
		}
	}
	return lines
}
