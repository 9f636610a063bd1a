package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Compile-time interface check.
var _ Orchestrator = (*Pipeline)(nil)

// Pipeline implements Orchestrator. It drives a Planner, an Executor and a
// Synthesizer strictly in that order, running subtasks one at a time.
type Pipeline struct {
	planner     *Planner
	executor    *Executor
	synthesizer *Synthesizer
	emit        func(ProgressEvent)
	observer    RunObserver
	log         zerolog.Logger
	now         func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithProgress sets the callback that receives progress events. It is
// called synchronously, in order, from the goroutine running the pipeline.
func WithProgress(emit func(ProgressEvent)) Option {
	return func(p *Pipeline) {
		p.emit = emit
	}
}

// WithRunObserver registers an observer, typically metrics, that sees the
// result of every run.
func WithRunObserver(obs RunObserver) Option {
	return func(p *Pipeline) {
		p.observer = obs
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.log = l
	}
}

// WithClock overrides time.Now for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// NewPipeline creates a Pipeline whose three phases all use gen.
func NewPipeline(gen Generator, opts ...Option) *Pipeline {
	p := &Pipeline{
		planner:     NewPlanner(gen),
		executor:    NewExecutor(gen),
		synthesizer: NewSynthesizer(gen),
		emit:        func(ProgressEvent) {},
		observer:    nopRunObserver{},
		log:         zerolog.Nop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ---------------------------------------------------------------------------
// Orchestrator interface
// ---------------------------------------------------------------------------

// Run plans goal, executes every subtask in plan order and synthesizes the
// results. The first error from any phase aborts the run; no partial run
// is returned.
func (p *Pipeline) Run(ctx context.Context, goal string) (_ *Run, err error) {
	defer func() { p.observer.ObserveRun(err) }()

	run := &Run{
		ID:        uuid.NewString(),
		Goal:      goal,
		StartedAt: p.now(),
	}
	log := p.log.With().Str("run", run.ID).Logger()

	// Planning
	p.emit(ProgressEvent{Phase: PhasePlanning, Status: ProgressWorking})
	plan, err := p.planner.Plan(ctx, goal)
	if err != nil {
		return nil, p.fail(PhasePlanning, 0, "", fmt.Errorf("orchestrator: plan: %w", err))
	}
	run.Plan = plan
	log.Debug().Int("subtasks", len(plan)).Msg("plan ready")
	p.emit(ProgressEvent{Phase: PhasePlanning, Status: ProgressComplete, Plan: plan})

	// Executing
	run.Results = make([]string, 0, len(plan))
	for i, subtask := range plan {
		p.emit(ProgressEvent{Phase: PhaseExecuting, Index: i + 1, Subtask: subtask, Status: ProgressWorking})
		out, err := p.executor.Execute(ctx, goal, subtask)
		if err != nil {
			return nil, p.fail(PhaseExecuting, i+1, subtask, fmt.Errorf("orchestrator: subtask %d: %w", i+1, err))
		}
		run.Results = append(run.Results, out)
		p.emit(ProgressEvent{Phase: PhaseExecuting, Index: i + 1, Subtask: subtask, Status: ProgressComplete, Message: out})
	}

	// Synthesizing
	p.emit(ProgressEvent{Phase: PhaseSynthesizing, Status: ProgressWorking})
	answer, err := p.synthesizer.Synthesize(ctx, goal, run.Plan, run.Results)
	if err != nil {
		return nil, p.fail(PhaseSynthesizing, 0, "", fmt.Errorf("orchestrator: synthesize: %w", err))
	}
	run.Answer = answer
	run.FinishedAt = p.now()

	log.Debug().Dur("elapsed", run.FinishedAt.Sub(run.StartedAt)).Msg("run complete")
	p.emit(ProgressEvent{Phase: PhaseDone, Status: ProgressComplete, Message: answer})
	return run, nil
}

type nopRunObserver struct{}

func (nopRunObserver) ObserveRun(error) {}

func (p *Pipeline) fail(phase Phase, index int, subtask string, err error) error {
	p.log.Error().Err(err).Str("phase", phase.String()).Msg("run aborted")
	p.emit(ProgressEvent{
		Phase:   phase,
		Index:   index,
		Subtask: subtask,
		Status:  ProgressFailed,
		Message: err.Error(),
	})
	return err
}
