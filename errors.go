package ecs

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
)

// DeadEntityError is returned when an operation targets an entity whose
// generation no longer matches the live slot.
type DeadEntityError struct {
	Entity Entity
}

func (e DeadEntityError) Error() string {
	return fmt.Sprintf("entity %v is dead or was never spawned", e.Entity)
}

// MissingComponentError is returned when a typed accessor is used against
// an entity whose archetype does not carry that component.
type MissingComponentError struct {
	Entity Entity
	Type   string
}

func (e MissingComponentError) Error() string {
	return fmt.Sprintf("entity %v has no component %s", e.Entity, e.Type)
}

// UnregisteredEventError is returned when a Reader/Writer is requested for
// an event type that was never registered on the World.
type UnregisteredEventError struct {
	Type string
}

func (e UnregisteredEventError) Error() string {
	return fmt.Sprintf("event type %s was never registered", e.Type)
}

// ArchetypeIndexOutOfRangeError signals an internal-consistency violation:
// a cursor or accessor addressed a row past the live length of a table.
type ArchetypeIndexOutOfRangeError struct {
	Archetype ArchetypeID
	Index     int
	Length    int
}

func (e ArchetypeIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("archetype %v: index %d out of range (length %d)", e.Archetype, e.Index, e.Length)
}

// ScheduleCycleError is returned when a Schedule's system-set graph cannot
// be topologically sorted because of a before/after cycle.
type ScheduleCycleError struct {
	Stage Stage
	Sets  []string
}

func (e ScheduleCycleError) Error() string {
	return fmt.Sprintf("stage %v: system set ordering cycle among %v", e.Stage, e.Sets)
}

// PluginBuildError wraps a panic or error raised while building a Plugin.
type PluginBuildError struct {
	Plugin string
	Err    error
}

func (e PluginBuildError) Error() string {
	return fmt.Sprintf("plugin %q failed to build: %v", e.Plugin, e.Err)
}

func (e PluginBuildError) Unwrap() error { return e.Err }

// SerializationError wraps a failure encoding or decoding world state.
type SerializationError struct {
	Phase string // "encode" or "decode"
	Err   error
}

func (e SerializationError) Error() string {
	return fmt.Sprintf("serialization %s failed: %v", e.Phase, e.Err)
}

func (e SerializationError) Unwrap() error { return e.Err }

// mustNotHappen panics with a traced message for invariant violations that
// indicate an internal bug rather than caller misuse.
func mustNotHappen(err error) {
	panic(bark.AddTrace(err))
}
