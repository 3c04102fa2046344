package jotter

import (
	_ "embed"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/jotter/internal/platform"
	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/editor"
)

//go:embed VERSION
var version string

// Version is the library version.
var Version = strings.TrimSpace(version)

// --- Configuration ---

// Option defines a functional option for configuring jotter.
type Option = platform.Option

// WithAutoInit enables automatic initialization of the vault (creates directories and git init).
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithVersioning enables or disables Git versioning.
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository injects a custom note store.
func WithRepository(repo core.NoteRepository) Option {
	return platform.WithRepository(repo)
}

// WithSettingsRepository injects a custom settings store.
func WithSettingsRepository(repo core.SettingsRepository) Option {
	return platform.WithSettingsRepository(repo)
}

// WithSystemDir sets the hidden directory name (default ".jotter").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithEventBuffer sets the size of the watch channel buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithReadOnly opens the vault without allowing writes.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the temporary-directory sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithWatcherErrorHandler registers a callback for errors raised inside the watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithClock overrides the time source used to stamp notes.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// --- Factory ---

// New opens a vault and returns the note service.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init initializes a vault explicitly and returns its note store.
func Init(path string, opts ...Option) (core.NoteRepository, error) {
	return platform.Init(path, opts...)
}

// NewEditor creates a formatting editor, optionally preloaded with the
// content of a stored note.
func NewEditor(n *core.Note, opts ...editor.Option) *editor.Editor {
	e := editor.New(opts...)
	if n != nil {
		e.LoadContent(n.Content)
	}
	return e
}

// --- Safety & Utils ---

// ResolveVaultPath determines the actual path for the vault based on safety rules.
func ResolveVaultPath(userPath string, forceTemp bool) string {
	return platform.ResolveVaultPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindVaultRoot looks upwards for a vault root indicator.
func FindVaultRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
