package ecs

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Plugin builds a reusable bundle of systems, resources, and events onto
// an App, the composition unit grounded on df-mc/dragonfly's
// server/plugin.Plugin. Cleanup undoes whatever Build registered, called
// in reverse build order when a plugin is dropped by
// App.ResetToSessionCheckpoint.
type Plugin interface {
	Name() string
	Build(app *App) error
	Cleanup(app *App) error
}

// App wires a World and a Schedule together with a plugin build step and
// a per-tick orchestrator, the composition root grounded on dragonfly's
// server/plugin.Manager (ordered Build, panic-safe, *slog.Logger
// plumbing).
type App struct {
	world       *World
	schedule    *Schedule
	plugins     []Plugin
	built       []string
	logger      *slog.Logger
	frameBudget time.Duration

	pluginCheckpoint int
	hasCheckpoint    bool
}

// NewApp builds an App with a fresh World and empty Schedule, configured
// by opts.
func NewApp(opts ...Option) *App {
	a := &App{
		world:    NewWorld(),
		schedule: NewSchedule(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.world.logger = a.logger
	return a
}

// World returns the App's World.
func (a *App) World() *World { return a.world }

// Schedule returns the App's Schedule.
func (a *App) Schedule() *Schedule { return a.schedule }

// Logger returns the App's logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Commands returns the World's shared deferred-mutation buffer, the same
// one any system reaches via w.Commands() during Schedule.Run, flushed
// once per Tick after the schedule runs.
func (a *App) Commands() *Commands {
	return a.world.Commands()
}

// Build runs every registered plugin's Build method in registration
// order, recovering a plugin panic into a PluginBuildError rather than
// crashing the App, the way dragonfly's Manager.Load guards Plugin.Enable.
// Build stops and returns at the first plugin that errors or panics.
func (a *App) Build() error {
	for _, p := range a.plugins {
		if err := a.buildOne(p); err != nil {
			return err
		}
		a.built = append(a.built, p.Name())
		a.logger.Info("plugin built", "plugin", p.Name())
	}
	return nil
}

func (a *App) buildOne(p Plugin) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = PluginBuildError{Plugin: p.Name(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if buildErr := p.Build(a); buildErr != nil {
		return PluginBuildError{Plugin: p.Name(), Err: buildErr}
	}
	return nil
}

// AddPlugin builds p against this App immediately and records it for
// later cleanup, per spec.md §4.9. A build failure propagates to the
// caller rather than being swallowed, since a plugin that cannot build is
// a construction-time error.
func (a *App) AddPlugin(p Plugin) error {
	if err := a.buildOne(p); err != nil {
		return err
	}
	a.plugins = append(a.plugins, p)
	a.built = append(a.built, p.Name())
	a.logger.Info("plugin added", "plugin", p.Name())
	return nil
}

// AddPlugins adds each plugin in order, stopping at the first one that
// fails to build.
func (a *App) AddPlugins(plugins ...Plugin) error {
	for _, p := range plugins {
		if err := a.AddPlugin(p); err != nil {
			return err
		}
	}
	return nil
}

// AddSystem registers sys to run during stage, in its own singleton
// SystemSet named after the system. Fluent: returns a for chaining.
func (a *App) AddSystem(stage Stage, sys System) *App {
	a.schedule.AddSystemSet(stage, NewSystemSet(sys.Meta().Name).Add(sys))
	return a
}

// AddEvent registers T as a usable event type on the App's World. A
// package-level function, not a method, because Go methods cannot carry
// their own type parameters.
func AddEvent[T any](a *App) *App {
	RegisterEvent[T](a.world)
	return a
}

// AddResource installs value as the App's singleton instance of its type.
func AddResource[T any](a *App, value T) *App {
	InsertResource(a.world, value)
	return a
}

// AddState registers S as a state-machine type with the given initial
// value, usable with InState run conditions and AddSystemInState.
func AddState[S comparable](a *App, initial S) *App {
	InitState(a.world, initial)
	return a
}

// ConfigureSet registers a fully-built SystemSet (with its own Before/
// After/RunIf already attached) to run during stage.
func (a *App) ConfigureSet(stage Stage, set *SystemSet) *App {
	a.schedule.AddSystemSet(stage, set)
	return a
}

// AddSystemToSet appends sys to the named SystemSet within stage,
// creating that set if it does not exist yet.
func (a *App) AddSystemToSet(stage Stage, setName string, sys System) *App {
	for _, set := range a.schedule.stages[stage] {
		if set.name == setName {
			set.Add(sys)
			return a
		}
	}
	a.schedule.AddSystemSet(stage, NewSystemSet(setName).Add(sys))
	return a
}

// gatedSystem wraps a System with an additional RunCondition, ANDed with
// whatever condition the wrapped system already carried, used by
// AddSystemInState to attach a state check without discarding a system's
// own RunIf.
type gatedSystem struct {
	inner System
	cond  RunCondition
}

func (g gatedSystem) Meta() SystemMeta           { return g.inner.Meta() }
func (g gatedSystem) RunCondition() RunCondition { return g.cond }

func (g gatedSystem) ShouldRun(w *World) bool {
	if !g.inner.ShouldRun(w) {
		return false
	}
	return g.cond == nil || g.cond(w)
}

func (g gatedSystem) Run(w *World) error { return g.inner.Run(w) }

// AddSystemInState registers sys to run during stage only while S's
// current state equals state, the fluent shorthand for
// AddSystem(stage, sys) plus a RunIf(InState(state)) gate.
func AddSystemInState[S comparable](a *App, stage Stage, state S, sys System) *App {
	gated := gatedSystem{inner: sys, cond: InState(state)}
	a.schedule.AddSystemSet(stage, NewSystemSet(sys.Meta().Name).Add(gated))
	return a
}

// MarkSessionCheckpoint records the current plugin count as the point
// ResetToSessionCheckpoint returns to, per spec.md §4.9.
func (a *App) MarkSessionCheckpoint() {
	a.pluginCheckpoint = len(a.plugins)
	a.hasCheckpoint = true
}

// ResetToSessionCheckpoint runs spec.md §4.9's four-step reset: cleans up
// and drops every plugin added after the checkpoint (reverse order,
// cleanup errors swallowed and logged per spec.md §7), clears every
// scheduled system, rebuilds the retained plugins so they re-register
// their systems, then wipes the World's entities/archetypes/event
// buffers while leaving resources and observers untouched. Returns an
// error if no checkpoint has been marked, or if a retained plugin fails
// to rebuild.
func (a *App) ResetToSessionCheckpoint() error {
	if !a.hasCheckpoint {
		return fmt.Errorf("ecs: no session checkpoint has been marked")
	}

	for i := len(a.plugins) - 1; i >= a.pluginCheckpoint; i-- {
		p := a.plugins[i]
		if err := p.Cleanup(a); err != nil {
			a.logger.Error("plugin cleanup failed", "plugin", p.Name(), "error", err)
		}
	}
	a.plugins = a.plugins[:a.pluginCheckpoint]
	if len(a.built) > a.pluginCheckpoint {
		a.built = a.built[:a.pluginCheckpoint]
	}

	a.schedule = NewSchedule()

	for _, p := range a.plugins {
		if err := a.buildOne(p); err != nil {
			return err
		}
	}

	a.world.resetGameState()
	return nil
}

// Tick runs one full simulation step in the order spec.md §4.10
// specifies: swap event buffers, run the schedule, flush deferred
// commands (which may themselves fire observers), advance the change-
// detection tick, then apply pending state transitions.
func (a *App) Tick() error {
	a.world.events.swapAll()
	runErr := a.schedule.Run(a.world)
	a.Commands().Flush()
	a.world.AdvanceTick()
	ApplyStateTransitions(a.world)
	return runErr
}

// Run executes Tick exactly n times, stopping early if any Tick returns
// an error.
func (a *App) Run(n int) error {
	for i := 0; i < n; i++ {
		if err := a.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// RunWithFrameBudget ticks in a loop, sleeping out the remainder of each
// frame's budget, until ctx is cancelled. A zero frameBudget defaults to a
// 16ms (~60Hz) cadence.
func (a *App) RunWithFrameBudget(ctx context.Context) error {
	budget := a.frameBudget
	if budget <= 0 {
		budget = 16 * time.Millisecond
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		start := time.Now()
		if err := a.Tick(); err != nil {
			return err
		}
		if elapsed := time.Since(start); elapsed < budget {
			time.Sleep(budget - elapsed)
		}
	}
}
