package ecs

// The interfaces below name the shape external collaborator plugins are
// expected to satisfy; ecsframe ships no implementation of any of them.
// They exist so a Plugin author building a render/audio/physics/input/
// window/tilemap/docs integration on top of ecsframe has a documented
// contract to target, per spec.md §1's framing of those subsystems as
// "external collaborators, only their interfaces are specified".

// RenderPlugin draws the current World state to some output surface once
// per frame, after the Schedule's Last stage has run.
type RenderPlugin interface {
	Plugin
	Draw(app *App) error
}

// AudioPlugin plays sound in response to World state or events; it has no
// further required shape beyond being a Plugin, since mixing and output
// device concerns are entirely its own.
type AudioPlugin interface {
	Plugin
}

// PhysicsPlugin advances a physical simulation, typically registered as a
// System in the Update stage, reading and writing whatever motion
// components it defines.
type PhysicsPlugin interface {
	Plugin
}

// InputPlugin samples input devices and turns them into resources or
// events other systems read, typically registered in the First stage so
// Update sees a frame-stable snapshot.
type InputPlugin interface {
	Plugin
}

// WindowPlugin owns the application window/surface lifecycle a
// RenderPlugin draws into.
type WindowPlugin interface {
	Plugin
}

// TilemapPlugin loads and exposes tile-grid level data as entities or a
// resource.
type TilemapPlugin interface {
	Plugin
}

// DocsPlugin generates documentation from a World's registered systems,
// resources, and event types; entirely optional tooling.
type DocsPlugin interface {
	Plugin
}
