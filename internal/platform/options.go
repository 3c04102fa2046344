package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/jotter/pkg/core"
)

// options holds the internal configuration for the jotter service.
type options struct {
	repository core.NoteRepository
	settings   core.SettingsRepository
	logger     *slog.Logger
	now        func() time.Time
	config     map[string]any
}

// Option defines a functional option for configuring jotter.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		config: make(map[string]any),
	}
}

func parseOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithAutoInit enables automatic initialization of the vault (creates directories and git init).
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.config["auto_init"] = auto
	}
}

// WithVersioning enables or disables Git versioning of the vault.
// When not set, versioning is detected from the vault (.git present, or a fresh vault).
func WithVersioning(enabled bool) Option {
	return func(o *options) {
		o.config["gitless"] = !enabled
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithLogger sets the logger for the service and the storage adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository injects a custom note store (e.g. a mock).
// If provided, the default filesystem adapter is skipped.
func WithRepository(repo core.NoteRepository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithSettingsRepository injects a custom settings store. By default the note
// repository is used when it also stores settings.
func WithSettingsRepository(repo core.SettingsRepository) Option {
	return func(o *options) {
		o.settings = repo
	}
}

// WithSystemDir sets the hidden directory name (default ".jotter").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.config["system_dir"] = name
	}
}

// WithEventBuffer sets the size of the watch channel buffer.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithWatcherErrorHandler registers a callback for errors raised inside the watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Write operations return core.ErrReadOnly.
// 2. Initialization (Mkdir, Git Init) is skipped.
// 3. The dev sandbox is bypassed (the real path is used).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true), jotter re-roots the vault into a temporary directory.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}

// WithClock overrides the time source used to stamp notes.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}
