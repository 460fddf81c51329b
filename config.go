package ecs

import (
	"log/slog"
	"time"
)

// Option configures an App at build time, following the teacher's
// config.go global-config-object idiom but expressed as functional
// options the way dragonfly's plugin.Config is assembled.
type Option func(*App)

// WithAppLogger overrides the *slog.Logger the App and every system/plugin
// log through.
func WithAppLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// WithFrameBudget sets the wall-clock budget App.RunWithFrameBudget gives
// each frame: one tick runs, then the rest of the budget is slept away.
func WithFrameBudget(d time.Duration) Option {
	return func(a *App) { a.frameBudget = d }
}

// WithWorldOptions forwards WorldOption values to the App's World at
// construction time.
func WithWorldOptions(opts ...WorldOption) Option {
	return func(a *App) {
		for _, opt := range opts {
			opt(a.world)
		}
	}
}

// WithPlugins registers plugins to be built in order when the App is
// built, matching dragonfly's Manager.Load ordering.
func WithPlugins(plugins ...Plugin) Option {
	return func(a *App) { a.plugins = append(a.plugins, plugins...) }
}
