// Package estimate runs the estimate pipeline: price the job, place it, build
// permit links, ask the model for the narrative, and merge the results.
package estimate

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/straye-as/estimate-api/internal/domain"
	"github.com/straye-as/estimate-api/internal/location"
	"github.com/straye-as/estimate-api/internal/pricing"
)

// Generator produces the narrative part of an estimate
type Generator interface {
	Generate(ctx context.Context, in domain.Inputs, totals domain.Totals, guess domain.LocationGuess) (domain.GenerationResult, error)
}

// Assembler builds complete Outputs. It holds no per-run state and is safe
// for concurrent use.
type Assembler struct {
	resolver  location.Resolver
	generator Generator
	logger    *zap.Logger
	observer  PhaseObserver
}

// Option configures an Assembler
type Option func(*Assembler)

// WithObserver reports every phase transition of every run to o
func WithObserver(o PhaseObserver) Option {
	return func(a *Assembler) { a.observer = o }
}

// NewAssembler creates an Assembler
func NewAssembler(resolver location.Resolver, generator Generator, logger *zap.Logger, opts ...Option) *Assembler {
	a := &Assembler{
		resolver:  resolver,
		generator: generator,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BuildOutput runs the pipeline for in. It returns either a whole Output or
// an error; there is no partial result. Resolver trouble only empties the
// location guess, while validation, generation and cancellation errors fail
// the run.
func (a *Assembler) BuildOutput(ctx context.Context, in domain.Inputs) (domain.Output, error) {
	r := &run{
		id:       uuid.NewString(),
		logger:   a.logger,
		observer: a.observer,
		started:  time.Now(),
	}

	if err := domain.ValidateInputs(in); err != nil {
		return r.fail(err)
	}

	r.enter(PhaseComputingTotals)
	totals := pricing.ComputeTotals(in)

	if err := ctx.Err(); err != nil {
		return r.fail(err)
	}
	r.enter(PhaseResolvingLocation)
	guess := a.resolver.Lookup(ctx, in.Zip)

	if err := ctx.Err(); err != nil {
		return r.fail(err)
	}
	r.enter(PhaseBuildingLinks)
	links := location.BuildSearchLinks(in.Zip, guess)

	r.enter(PhaseGeneratingContent)
	gen, err := a.generator.Generate(ctx, in, totals, guess)
	if err != nil {
		return r.fail(err)
	}
	if err := ctx.Err(); err != nil {
		return r.fail(err)
	}

	out := merge(totals, gen, guess, links)
	r.enter(PhaseAssembled)
	return out, nil
}

// merge copies every list so the Output shares nothing with its sources
func merge(totals domain.Totals, gen domain.GenerationResult, guess domain.LocationGuess, links []domain.SearchLink) domain.Output {
	return domain.Output{
		Totals:      totals,
		ScopeOfWork: gen.ScopeOfWork,
		Assumptions: cloneList(gen.Assumptions),
		Exclusions:  cloneList(gen.Exclusions),
		BOM:         cloneList(gen.BOM),
		AHJ: domain.AHJ{
			LocationGuess: guess,
			Guidance:      cloneList(gen.AHJGuidance),
			SearchLinks:   cloneList(links),
		},
	}
}

func cloneList[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// run tracks the phase of one BuildOutput call
type run struct {
	id       string
	phase    Phase
	logger   *zap.Logger
	observer PhaseObserver
	started  time.Time
}

func (r *run) enter(p Phase) {
	from := r.phase
	r.phase = p
	r.logger.Debug("estimate phase",
		zap.String("run", r.id),
		zap.Stringer("from", from),
		zap.Stringer("to", p),
	)
	if r.observer != nil {
		r.observer.OnPhase(from, p)
	}
}

func (r *run) fail(err error) (domain.Output, error) {
	failedIn := r.phase
	r.enter(PhaseFailed)
	r.logger.Warn("estimate run failed",
		zap.String("run", r.id),
		zap.Stringer("phase", failedIn),
		zap.Duration("elapsed", time.Since(r.started)),
		zap.Error(err),
	)
	return domain.Output{}, err
}
