package dre

import (
	"context"
	"errors"
	"log/slog"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// TracerName is the instrumentation scope of assembler spans.
const TracerName = "drecli.dre"

// Request asks for the derived view of one category.
type Request struct {
	Category string
	// Headline overrides the category's headline column for statistics.
	Headline string
	// RequireBase forces ratio_to_base columns even when the category does
	// not declare them.
	RequireBase bool
	// Magnitudes also returns the sign-normalised member columns.
	Magnitudes bool
	// DropEmptyPeriods hides all-zero periods even when the category does
	// not ask for it.
	DropEmptyPeriods bool
}

// DerivedView is everything a rendering layer needs for one category.
type DerivedView struct {
	Category Category
	// Table holds the surviving member columns followed by the derived
	// percentage columns.
	Table *Table
	// Magnitudes holds the surviving member columns after NormalizeSigns. It
	// is nil unless the request asked for it.
	Magnitudes *Table
	// Pruned lists the members dropped because they summed to zero.
	Pruned     []string
	Statistics StatisticsRecord
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithMaxParallel bounds the number of views AssembleAll computes at once.
// Values below one are ignored.
func WithMaxParallel(n int) AssemblerOption {
	return func(a *Assembler) {
		if n > 0 {
			a.maxParallel = n
		}
	}
}

// Assembler runs the derivation pipeline for registry categories. It holds
// no per-call state and is safe for concurrent use.
type Assembler struct {
	registry    *Registry
	base        string
	maxParallel int
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewAssembler returns an assembler over registry using base as the ratio
// denominator. An empty base means BaseAccount.
func NewAssembler(registry *Registry, base string, logger *slog.Logger, opts ...AssemblerOption) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	if base == "" {
		base = BaseAccount
	}

	a := &Assembler{
		registry:    registry,
		base:        base,
		maxParallel: runtime.GOMAXPROCS(0),
		logger:      logger.With(slog.String("component", "dre_assembler")),
		tracer:      otel.Tracer(TracerName),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Registry returns the categories the assembler serves.
func (a *Assembler) Registry() *Registry {
	return a.registry
}

// Base returns the ratio_to_base denominator column.
func (a *Assembler) Base() string {
	return a.base
}

// Assemble derives the view of one category from raw restricted to the
// selected periods. raw is never modified.
func (a *Assembler) Assemble(ctx context.Context, raw *Table, selection []string, req Request) (*DerivedView, error) {
	ctx, span := a.tracer.Start(ctx, "dre.assemble",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("dre.category", req.Category),
			attribute.Int("dre.periods.selected", len(selection)),
		),
	)
	defer span.End()

	view, err := a.assemble(raw, selection, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrCategoryNotFound) {
			a.logger.WarnContext(ctx, "category misconfigured",
				"category", req.Category,
				"error", err)
		}
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("dre.rows", view.Table.Len()),
		attribute.Int("dre.columns", view.Table.Width()),
		attribute.Int("dre.pruned", len(view.Pruned)),
	)
	span.SetStatus(codes.Ok, "")

	a.logger.DebugContext(ctx, "derived view assembled",
		"category", view.Category.Name,
		"rows", view.Table.Len(),
		"columns", view.Table.Width(),
		"pruned", view.Pruned,
		"headline", view.Statistics.Metric)

	return view, nil
}

func (a *Assembler) assemble(raw *Table, selection []string, req Request) (*DerivedView, error) {
	cat, err := a.registry.Lookup(req.Category)
	if err != nil {
		return nil, err
	}

	filtered := SelectPeriods(raw, selection)

	members, err := filtered.Select(cat.Members...)
	if err != nil {
		return nil, withCategory(err, cat.Name)
	}

	headline := req.Headline
	if headline == "" {
		headline = cat.HeadlineColumn()
	}
	headlineValues, ok := filtered.Column(headline)
	if !ok {
		return nil, accountNotFound(headline, cat.Name)
	}

	withBase := cat.RatioToBase || req.RequireBase
	if withBase && !filtered.Has(a.base) {
		return nil, accountNotFound(a.base, cat.Name)
	}

	kept, pruned := PruneZeroColumns(members)
	view := &DerivedView{
		Category: cat,
		Pruned:   pruned,
	}

	// Nothing left to show: empty table, undefined statistics.
	if kept.Width() == 0 {
		view.Table = kept
		view.Statistics = Summarize(headline, nil)
		if req.Magnitudes {
			view.Magnitudes = kept
		}
		return view, nil
	}

	// Periods emptied by pruning disappear from the view and from the
	// statistics alike.
	if cat.DropEmptyPeriods || req.DropEmptyPeriods {
		kept = PruneZeroRows(kept)
		filtered = SelectPeriods(filtered, kept.Periods())
		headlineValues, _ = filtered.Column(headline)
	}

	targets := kept.Columns()
	if withBase {
		working := kept
		if !working.Has(a.base) {
			baseValues, _ := filtered.Column(a.base)
			if working, err = working.WithColumn(a.base, baseValues); err != nil {
				return nil, err
			}
		}
		view.Table, err = AddPercentages(working, working.Columns(), a.base)
	} else {
		view.Table, err = AddPercentOfTotal(kept, targets)
	}
	if err != nil {
		return nil, withCategory(err, cat.Name)
	}

	view.Statistics = Summarize(headline, headlineValues)

	if req.Magnitudes {
		if view.Magnitudes, err = NormalizeSigns(kept, targets); err != nil {
			return nil, withCategory(err, cat.Name)
		}
	}

	return view, nil
}

// AssembleAll runs several requests concurrently against the same raw table
// and returns the views in request order. The first failure cancels the
// remaining work.
func (a *Assembler) AssembleAll(ctx context.Context, raw *Table, selection []string, reqs []Request) ([]*DerivedView, error) {
	ctx, span := a.tracer.Start(ctx, "dre.assemble_all",
		trace.WithAttributes(attribute.Int("dre.requests", len(reqs))),
	)
	defer span.End()

	views := make([]*DerivedView, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxParallel)

	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			view, err := a.Assemble(gctx, raw, selection, req)
			if err != nil {
				return err
			}
			views[i] = view
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return views, nil
}

// RequestsFor builds one default request per category name.
func RequestsFor(names ...string) []Request {
	reqs := make([]Request, len(names))
	for i, name := range names {
		reqs[i] = Request{Category: name}
	}
	return reqs
}
