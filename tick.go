package ecs

// Tick is a monotonic counter advanced once per World update, used to
// stamp component added/changed rows for change-detection queries
// (spec.md §4.4).
type Tick uint64

// newerThan reports whether a component row touched at `stamp` should be
// visible to a query last run at `since`, following the standard
// last-run/this-run comparison: stamp is newer iff it was set after the
// query's previous observation.
func newerThan(stamp, since Tick) bool {
	return stamp > since
}
