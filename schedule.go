package ecs

import "fmt"

// Stage names one phase of a per-tick Schedule run, in the fixed order
// spec.md §5 lays out.
type Stage int

const (
	First Stage = iota
	PreUpdate
	Update
	PostUpdate
	Last
)

func (s Stage) String() string {
	switch s {
	case First:
		return "First"
	case PreUpdate:
		return "PreUpdate"
	case Update:
		return "Update"
	case PostUpdate:
		return "PostUpdate"
	case Last:
		return "Last"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// stageOrder lists every Stage in run order; Schedule.Run walks it
// directly rather than trusting iteration order over a map.
var stageOrder = []Stage{First, PreUpdate, Update, PostUpdate, Last}

// SystemSet groups systems that should be ordered, gated, and logged
// together, grounded on DangerosoDavo/ecs's work-group model and
// jamyct/fleet's before/after stage constraints.
type SystemSet struct {
	name       string
	systems    []System
	before     []string
	after      []string
	conditions []RunCondition
}

// NewSystemSet creates an empty, named system set.
func NewSystemSet(name string) *SystemSet {
	return &SystemSet{name: name}
}

// Add appends systems to run, in order, when this set executes.
func (s *SystemSet) Add(systems ...System) *SystemSet {
	s.systems = append(s.systems, systems...)
	return s
}

// Before declares that this set must run before the named sets within the
// same stage.
func (s *SystemSet) Before(names ...string) *SystemSet {
	s.before = append(s.before, names...)
	return s
}

// After declares that this set must run after the named sets within the
// same stage.
func (s *SystemSet) After(names ...string) *SystemSet {
	s.after = append(s.after, names...)
	return s
}

// RunIf attaches a run condition; the set (and every system in it) is
// skipped for a tick where cond returns false.
func (s *SystemSet) RunIf(cond RunCondition) *SystemSet {
	s.conditions = append(s.conditions, cond)
	return s
}

func (s *SystemSet) passes(w *World) bool {
	for _, cond := range s.conditions {
		if !cond(w) {
			return false
		}
	}
	return true
}

// Schedule holds the system sets registered per stage and runs them in
// stage order once per tick, each stage's sets topologically sorted by
// their before/after constraints.
type Schedule struct {
	stages map[Stage][]*SystemSet
}

// NewSchedule creates an empty Schedule.
func NewSchedule() *Schedule {
	return &Schedule{stages: make(map[Stage][]*SystemSet)}
}

// AddSystemSet registers set to run during stage.
func (s *Schedule) AddSystemSet(stage Stage, set *SystemSet) *Schedule {
	s.stages[stage] = append(s.stages[stage], set)
	return s
}

// Run executes every stage in order, and within each stage every system
// set in an order consistent with its before/after constraints. A system
// that returns an error is logged at Error level tagged with its name and
// does not stop the rest of the stage; a stage whose sets cannot be
// ordered (a before/after cycle) returns a ScheduleCycleError and aborts
// the whole Run.
func (s *Schedule) Run(w *World) error {
	for _, stage := range stageOrder {
		sets, ok := s.stages[stage]
		if !ok || len(sets) == 0 {
			continue
		}
		ordered, err := topoSortSets(stage, sets)
		if err != nil {
			return err
		}
		for _, set := range ordered {
			if !set.passes(w) {
				continue
			}
			for _, sys := range set.systems {
				if !sys.ShouldRun(w) {
					continue
				}
				if err := sys.Run(w); err != nil {
					w.logger.Error("system failed", "system", sys.Meta().Name, "set", set.name, "stage", stage.String(), "error", err)
				}
			}
		}
	}
	return nil
}

// topoSortSets orders sets within one stage via Kahn's algorithm over
// their before/after edges.
func topoSortSets(stage Stage, sets []*SystemSet) ([]*SystemSet, error) {
	byName := make(map[string]*SystemSet, len(sets))
	indegree := make(map[string]int, len(sets))
	edges := make(map[string][]string, len(sets))
	for _, s := range sets {
		byName[s.name] = s
		if _, ok := indegree[s.name]; !ok {
			indegree[s.name] = 0
		}
	}
	addEdge := func(from, to string) {
		if _, ok := byName[from]; !ok {
			return
		}
		if _, ok := byName[to]; !ok {
			return
		}
		edges[from] = append(edges[from], to)
		indegree[to]++
	}
	for _, s := range sets {
		for _, b := range s.before {
			addEdge(s.name, b)
		}
		for _, a := range s.after {
			addEdge(a, s.name)
		}
	}

	var queue []string
	for _, s := range sets {
		if indegree[s.name] == 0 {
			queue = append(queue, s.name)
		}
	}
	var ordered []*SystemSet
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		ordered = append(ordered, byName[name])
		for _, next := range edges[name] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	if len(ordered) != len(sets) {
		var remaining []string
		for _, s := range sets {
			if indegree[s.name] > 0 {
				remaining = append(remaining, s.name)
			}
		}
		return nil, ScheduleCycleError{Stage: stage, Sets: remaining}
	}
	return ordered, nil
}
