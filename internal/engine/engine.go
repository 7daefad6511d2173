// Package engine runs the full well-test calculation pipeline: validate
// the reading, evaluate the PVT chain, derive rates, and assemble the
// immutable result record handed to presentation, report, and
// persistence layers.
//
// The engine holds no mutable state between invocations. Every Run
// allocates its own intermediate and final values, so callers are free to
// push many readings through one Engine concurrently; RunBatch does
// exactly that.
package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ramware/welltest/internal/pvt"
	"github.com/ramware/welltest/internal/rate"
	"github.com/ramware/welltest/internal/validate"
	"github.com/ramware/welltest/pkg/models"
)

// Engine is the calculation pipeline. The zero value is unusable; build
// one with New.
type Engine struct {
	defaults     models.CorrelationSelection
	batchWorkers int
}

// New creates an engine whose configured default methods fill any
// property the caller's selection leaves blank. batchWorkers caps
// RunBatch's concurrency; zero means one goroutine per reading.
func New(defaults models.CorrelationSelection, batchWorkers int) *Engine {
	return &Engine{defaults: defaults, batchWorkers: batchWorkers}
}

// Run computes one test's rates under the given correlation selection.
// The pipeline stops at the first unrecoverable error and never returns a
// partial result:
//
//	ValidationError        — the reading is rejected before any correlation runs
//	CorrelationDomainError — a correlation produced NaN/Inf
//	RateComputationError   — a required PVT dependency was missing
//
// Out-of-applicability-range evaluations accumulate as warnings on the
// returned result instead of failing.
func (e *Engine) Run(reading models.TestReading, sel models.CorrelationSelection) (models.RateResult, error) {
	resolved, err := pvt.ResolveSelection(e.merge(sel))
	if err != nil {
		return models.RateResult{}, err
	}

	vr, err := validate.Validate(reading)
	if err != nil {
		return models.RateResult{}, err
	}

	pvtRes, err := pvt.Evaluate(vr, resolved)
	if err != nil {
		return models.RateResult{}, err
	}

	var result models.RateResult
	if len(vr.Steps) > 0 {
		result, err = computeSeries(vr, pvtRes, resolved)
	} else {
		result, err = rate.Compute(vr, pvtRes)
	}
	if err != nil {
		return models.RateResult{}, err
	}

	return assemble(vr, pvtRes, result), nil
}

// RunBatch pushes several readings through the pipeline in parallel and
// returns results in input order. Concurrency is capped at the configured
// batch worker count when one is set. The first error cancels the
// remaining work.
func (e *Engine) RunBatch(ctx context.Context, readings []models.TestReading, sel models.CorrelationSelection) ([]models.RateResult, error) {
	results := make([]models.RateResult, len(readings))

	g, ctx := errgroup.WithContext(ctx)
	if e.batchWorkers > 0 {
		g.SetLimit(e.batchWorkers)
	}
	for i, r := range readings {
		i, r := i, r
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			res, err := e.Run(r, sel)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// merge overlays the caller's selection on the engine defaults. Blank
// fields fall through to the defaults; the registry fills anything still
// blank after that.
func (e *Engine) merge(sel models.CorrelationSelection) models.CorrelationSelection {
	if sel.SolutionGOR == "" {
		sel.SolutionGOR = e.defaults.SolutionGOR
	}
	if sel.BubblePoint == "" {
		sel.BubblePoint = e.defaults.BubblePoint
	}
	if sel.Bo == "" {
		sel.Bo = e.defaults.Bo
	}
	return sel
}

// assemble is the final packaging step: it attaches the owned copies of
// the reading and PVT chain plus the merged warning list to the rate
// result. Pure packaging, no further calculation.
func assemble(vr models.ValidatedReading, pvtRes models.PVTResult, result models.RateResult) models.RateResult {
	result.Reading = vr.Source
	result.PVT = pvtRes
	result.Warnings = append(append([]models.RangeWarning(nil), pvtRes.Warnings...), result.Warnings...)
	return result
}
