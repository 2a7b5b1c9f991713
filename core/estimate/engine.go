// Package estimate turns a project into a priced bill of quantities.
// CLI and HTTP are thin wrappers around this engine.
package estimate

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"buildcost/core/carbon"
	"buildcost/core/catalog"
	"buildcost/core/geometry"
	"buildcost/core/materials"
	"buildcost/core/surface"
	"buildcost/core/types"
	"buildcost/internal/errors"
	"buildcost/internal/logging"
)

// Rates are the prices of the bulk consumables, which have no catalog
type Rates struct {
	CementBag             decimal.Decimal `json:"cement_bag"`
	SandPerCubicFoot      decimal.Decimal `json:"sand_per_cuft"`
	AggregatePerCubicFoot decimal.Decimal `json:"aggregate_per_cuft"`
}

// Config configures the estimation engine
type Config struct {
	Rates     Rates           `json:"rates"`
	Currency  types.Currency  `json:"currency"`
	MarlaSize types.MarlaSize `json:"marla_size"`
	Mix       materials.Mix   `json:"mix"`
	Carbon    carbon.Factors  `json:"carbon"`

	// Workers bounds concurrent surface evaluation; <= 0 uses GOMAXPROCS
	Workers int `json:"workers"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Rates: Rates{
			CementBag:             decimal.NewFromInt(1450),
			SandPerCubicFoot:      decimal.NewFromInt(65),
			AggregatePerCubicFoot: decimal.NewFromInt(110),
		},
		Currency:  types.CurrencyPKR,
		MarlaSize: types.MarlaSize272,
		Mix:       materials.DefaultMix,
		Carbon:    carbon.DefaultFactors(),
	}
}

// Engine estimates projects. It is safe for concurrent use.
type Engine struct {
	catalogs *catalog.Set
	config   Config
	logger   *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCatalogs replaces the builtin catalogs
func WithCatalogs(catalogs *catalog.Set) Option {
	return func(e *Engine) {
		if catalogs != nil {
			e.catalogs = catalogs
		}
	}
}

// NewEngine creates a new estimation engine
func NewEngine(config Config, opts ...Option) *Engine {
	if config.Currency == "" {
		config.Currency = types.CurrencyPKR
	}
	if !config.MarlaSize.IsValid() {
		config.MarlaSize = types.MarlaSize272
	}
	if !config.Mix.IsValid() {
		config.Mix = materials.DefaultMix
	}
	if config.Carbon == (carbon.Factors{}) {
		config.Carbon = carbon.DefaultFactors()
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}

	e := &Engine{
		catalogs: catalog.Builtin(),
		config:   config,
		logger:   logging.Named("estimate"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the effective configuration
func (e *Engine) Config() Config {
	return e.config
}

// Catalogs returns the catalogs the engine prices against
func (e *Engine) Catalogs() *catalog.Set {
	return e.catalogs
}

// Estimate evaluates every surface of the project and prices the result.
//
// Surfaces are evaluated concurrently; aggregation happens afterwards in
// input order so the same project always yields the same bill.
func (e *Engine) Estimate(ctx context.Context, project *types.Project) (*Result, error) {
	start := time.Now()

	if project == nil {
		return nil, errors.Input("project is required")
	}

	inputHash, err := HashProject(project)
	if err != nil {
		return nil, errors.Internal("failed to hash project", err)
	}

	currency := e.config.Currency
	if project.Currency != "" {
		currency = project.Currency
	}
	marlaSize := e.config.MarlaSize
	if project.MarlaSize != 0 {
		marlaSize = project.MarlaSize
	}

	log := e.logger.With(
		zap.String("project", project.Name),
		zap.Int("surfaces", len(project.Surfaces)),
	)
	log.Info("estimating project")

	quantities := make([]surface.Quantities, len(project.Surfaces))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Workers)
	for i := range project.Surfaces {
		i := i
		in := project.Surfaces[i]
		if in.ID == "" {
			in.ID = fmt.Sprintf("surface-%d", i+1)
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := surface.Resolve(in, surface.WithMix(e.config.Mix))
			if err != nil {
				return err
			}
			quantities[i] = s.Evaluate(e.catalogs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.TypeInternal, "estimation cancelled", ctx.Err())
		}
		return nil, err
	}

	result := &Result{
		Project:   project,
		BOQ:       types.NewBillOfQuantities(currency),
		Totals:    newTotals(),
		PlotArea:  geometry.ComputePlotArea(project.PlotSizeMarlas, marlaSize),
		InputHash: inputHash,
	}

	for _, q := range quantities {
		sr := e.price(q, currency, log)
		for _, item := range sr.Items {
			result.BOQ.AddLineItem(item)
		}
		result.Surfaces = append(result.Surfaces, sr)
		result.Totals.add(sr)
	}
	result.Totals.Cost = result.BOQ.TotalCost
	result.Totals.CarbonKg = result.BOQ.TotalCarbonKg

	result.Metadata = Metadata{
		Currency:    currency,
		MarlaSize:   marlaSize,
		Mix:         e.config.Mix,
		Rates:       e.config.Rates,
		Workers:     e.config.Workers,
		EstimatedAt: start.UTC(),
		Duration:    time.Since(start),
	}

	log.Info("estimate complete",
		zap.String("total_cost", result.BOQ.TotalCost.StringFixed(2)),
		zap.Float64("carbon_kg", result.BOQ.TotalCarbonKg),
		zap.Int("violations", result.ViolationCount()),
		zap.Duration("duration", result.Metadata.Duration),
	)
	return result, nil
}

// EvaluateSurface resolves and evaluates a single surface without pricing it
func (e *Engine) EvaluateSurface(in types.SurfaceInput) (surface.Quantities, error) {
	s, err := surface.Resolve(in, surface.WithMix(e.config.Mix))
	if err != nil {
		return surface.Quantities{}, err
	}
	return s.Evaluate(e.catalogs), nil
}
