package ecs

import "reflect"

// RunCondition gates whether a system or system set executes on a given
// tick. A system built by NewSystem carries at most one of its own (a later
// RunIf replaces an earlier one); a SystemSet may carry several, and all
// must pass.
type RunCondition func(*World) bool

// SystemMeta describes a system's name and declared access, grounded on
// DangerosoDavo/ecs's SystemDescriptor{Reads,Writes,Resources}. Schedule.Run
// runs systems one at a time and does not consult the declared access.
type SystemMeta struct {
	Name      string
	Reads     []ComponentID
	Writes    []ComponentID
	Resources []reflect.Type
	Exclusive bool
}

// System is one unit of scheduled logic: a meta describing its declared
// access, an optional run_condition gating whether this tick should run
// it at all, and the run step itself, per spec.md §3's System shape
// ({ meta, run_condition, run(world) }). Run errors are logged by the
// Schedule at Error level tagged with Meta().Name and do not abort the
// stage, per spec.md §7.
type System interface {
	Meta() SystemMeta
	RunCondition() RunCondition
	ShouldRun(w *World) bool
	Run(w *World) error
}

// funcSystem adapts a plain function plus a SystemMeta and an optional
// RunCondition into a System, the same minimal-wrapper shape the
// teacher's factory.go uses to turn a bare constructor into a named,
// typed object.
type funcSystem struct {
	meta SystemMeta
	cond RunCondition
	fn   func(*World) error
}

func (f funcSystem) Meta() SystemMeta           { return f.meta }
func (f funcSystem) RunCondition() RunCondition { return f.cond }

// ShouldRun reports whether this system's own RunCondition passes; a nil
// condition always passes. Schedule.Run ANDs this with every ancestor
// SystemSet's RunIf conditions, per spec.md §4.8 rule 1.
func (f funcSystem) ShouldRun(w *World) bool {
	return f.cond == nil || f.cond(w)
}

func (f funcSystem) Run(w *World) error { return f.fn(w) }

// systemConfig accumulates a SystemMeta and an optional RunCondition as
// SystemOptions are applied, then is split back into funcSystem's fields.
type systemConfig struct {
	meta SystemMeta
	cond RunCondition
}

// SystemOption configures a system built by NewSystem.
type SystemOption func(*systemConfig)

// Reads declares components this system only reads, recorded in its
// SystemMeta.
func Reads(ids ...ComponentID) SystemOption {
	return func(c *systemConfig) { c.meta.Reads = append(c.meta.Reads, ids...) }
}

// Writes declares components this system may mutate.
func Writes(ids ...ComponentID) SystemOption {
	return func(c *systemConfig) { c.meta.Writes = append(c.meta.Writes, ids...) }
}

// UsesResource declares a resource type this system reads or writes.
func UsesResource(t reflect.Type) SystemOption {
	return func(c *systemConfig) { c.meta.Resources = append(c.meta.Resources, t) }
}

// Exclusive marks a system as requiring sole access to the World for its
// stage: the scheduler runs it alone, never concurrently with another
// system in the same stage.
func Exclusive() SystemOption {
	return func(c *systemConfig) { c.meta.Exclusive = true }
}

// RunIf attaches a per-system run condition: the system is skipped on any
// tick where cond returns false, independent of whatever RunIf conditions
// its enclosing SystemSet carries (spec.md §4.8 rule 1 ANDs both).
func RunIf(cond RunCondition) SystemOption {
	return func(c *systemConfig) { c.cond = cond }
}

// NewSystem wraps fn as a System named name, configured by opts.
func NewSystem(name string, fn func(*World) error, opts ...SystemOption) System {
	cfg := systemConfig{meta: SystemMeta{Name: name}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return funcSystem{meta: cfg.meta, cond: cfg.cond, fn: fn}
}
