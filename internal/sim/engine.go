package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/SchellingSegregation/internal/sim/core"
	"github.com/mitchelldurbincs/SchellingSegregation/internal/sim/events"
	"github.com/mitchelldurbincs/SchellingSegregation/internal/sim/worldgen"
)

// EngineConfig holds everything needed to start a run
type EngineConfig struct {
	Population int
	FracA      float64
	FracB      float64
	Threshold  float64
	Vacancy    VacancyStrategy
	Rng        *rand.Rand
	Logger     zerolog.Logger
	EventBus   *events.EventBus
	RunID      string
}

// Engine owns a grid and advances it one step at a time.
// Readers may inspect Grid between calls to Step, never during one.
type Engine struct {
	runID     string
	grid      *core.Grid
	threshold float64
	stepper   *Stepper
	eventBus  *events.EventBus
	logger    zerolog.Logger

	turn      int
	stats     Stats
	converged bool
}

// NewEngine generates the initial world and publishes simulation.started.
func NewEngine(ctx context.Context, cfg EngineConfig) (*Engine, error) {
	logger := cfg.Logger.With().Str("component", "SimEngine").Logger()

	select {
	case <-ctx.Done():
		logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled before world generation")
		return nil, ctx.Err()
	default:
	}

	if err := ValidateThreshold(cfg.Threshold); err != nil {
		return nil, err
	}
	if cfg.Rng == nil {
		logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		cfg.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.RunID == "" {
		cfg.RunID = uuid.New().String()
	}
	if cfg.EventBus == nil {
		cfg.EventBus = events.NewEventBusWithLogger(cfg.Logger)
	}
	logger = logger.With().Str("run_id", cfg.RunID).Logger()

	grid, err := worldgen.NewGenerator(cfg.Rng).Generate(cfg.Population, cfg.FracA, cfg.FracB)
	if err != nil {
		return nil, fmt.Errorf("world generation failed: %w", err)
	}

	e := &Engine{
		runID:     cfg.RunID,
		grid:      grid,
		threshold: cfg.Threshold,
		stepper:   NewStepper(cfg.Rng, cfg.Vacancy, logger),
		eventBus:  cfg.EventBus,
		logger:    logger,
	}
	e.stats = ComputeStats(grid, e.threshold)
	e.converged = e.stats.AllSatisfied()

	e.eventBus.Publish(events.NewSimulationStartedEvent(
		e.runID,
		grid.Size(),
		e.stats.Counts.A,
		e.stats.Counts.B,
		e.stats.Counts.Empty,
		e.threshold,
	))
	if e.converged {
		e.eventBus.Publish(events.NewSimulationConvergedEvent(e.runID, 0, e.stats.MeanSimilarity))
	}

	logger.Info().
		Int("grid_size", grid.Size()).
		Int("count_a", e.stats.Counts.A).
		Int("count_b", e.stats.Counts.B).
		Int("empty", e.stats.Counts.Empty).
		Float64("threshold", e.threshold).
		Str("vacancy_strategy", string(e.stepper.Strategy())).
		Msg("Engine created successfully")

	return e, nil
}

// Step advances the world once. The context is checked only before the step
// starts; a step in progress always runs to completion or fails.
func (e *Engine) Step(ctx context.Context) (StepResult, error) {
	select {
	case <-ctx.Done():
		return StepResult{}, ctx.Err()
	default:
	}

	start := time.Now()
	result, err := e.stepper.Advance(e.grid, e.threshold)
	if err != nil {
		e.logger.Error().Err(err).Int("step", e.turn+1).Msg("Step failed")
		return result, core.WrapStepError(e.turn+1, err)
	}
	e.turn++

	e.stats = ComputeStats(e.grid, e.threshold)
	elapsed := time.Since(start)

	e.eventBus.Publish(events.NewStepCompletedEvent(
		e.runID,
		e.turn,
		result.Moved(),
		e.stats.Unsatisfied,
		e.stats.MeanSimilarity,
		elapsed,
	))

	if !e.converged && e.stats.AllSatisfied() {
		e.converged = true
		e.eventBus.Publish(events.NewSimulationConvergedEvent(e.runID, e.turn, e.stats.MeanSimilarity))
		e.logger.Info().
			Int("step", e.turn).
			Float64("mean_similarity", e.stats.MeanSimilarity).
			Msg("All actors satisfied")
	}

	return result, nil
}

// Public accessors
func (e *Engine) Grid() *core.Grid   { return e.grid }
func (e *Engine) Turn() int          { return e.turn }
func (e *Engine) Stats() Stats       { return e.stats }
func (e *Engine) IsConverged() bool  { return e.converged }
func (e *Engine) RunID() string      { return e.runID }
func (e *Engine) Threshold() float64 { return e.threshold }

// EventBus exposes the bus so callers can attach subscribers.
func (e *Engine) EventBus() *events.EventBus { return e.eventBus }
