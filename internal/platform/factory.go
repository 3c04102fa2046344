package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/jotter/pkg/adapters/fs"
	"github.com/aretw0/jotter/pkg/core"
)

// New opens (and if configured, initializes) a vault and wires the domain service.
//
//	svc, err := jotter.New("./notes-vault", jotter.WithVersioning(false))
func New(uri string, opts ...Option) (*core.Service, error) {
	repo, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	o := parseOptions(opts)
	settings := o.settings
	if settings == nil {
		settings, _ = repo.(core.SettingsRepository)
	}

	svcOpts := []core.ServiceOption{core.WithLogger(o.logger), core.WithClock(o.now)}
	if size, ok := o.config["event_buffer"].(int); ok {
		svcOpts = append(svcOpts, core.WithEventBuffer(size))
	}
	return core.NewService(repo, settings, svcOpts...), nil
}

// Init resolves the vault path, builds the note repository and initializes it.
func Init(uri string, opts ...Option) (core.NoteRepository, error) {
	o := parseOptions(opts)

	if o.repository != nil {
		return o.repository, nil
	}

	repo, err := OpenFS(uri, o)
	if err != nil {
		return nil, err
	}
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

// OpenFS builds the filesystem repository without touching the disk.
func OpenFS(path string, o *options) (*fs.Repository, error) {
	autoInit, _ := o.config["auto_init"].(bool)
	tempDir, _ := o.config["temp_dir"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	systemDir, _ := o.config["system_dir"].(string)
	eventBuffer, _ := o.config["event_buffer"].(int)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))
	isReadOnly, _ := o.config["read_only"].(bool)

	// Default to safe when dev_safety is not set.
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}
	bypassSafety := isReadOnly || !devSafety

	useTemp := tempDir || (IsDevRun() && !bypassSafety)
	resolvedPath := ResolveVaultPath(path, useTemp)

	if IsDevRun() && o.logger != nil {
		if bypassSafety {
			if isReadOnly {
				o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolvedPath)
			} else {
				o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolvedPath)
			}
		} else {
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolvedPath)
		}
	}

	if systemDir == "" {
		systemDir = fs.DefaultSystemDir
	}

	gitless, explicit := o.config["gitless"].(bool)
	if !explicit {
		gitless = detectGitless(resolvedPath, systemDir, autoInit)
		if gitless && o.logger != nil {
			o.logger.Debug("auto-detected gitless mode", "reason", ".git missing")
		}
	}
	if !gitless && !fs.IsGitInstalled() {
		if explicit {
			return nil, fmt.Errorf("versioning requested but git is not installed")
		}
		if o.logger != nil {
			o.logger.Warn("git not installed, versioning disabled")
		}
		gitless = true
	}

	if o.logger != nil && useTemp {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", path, "resolved_path", resolvedPath)
	}

	return fs.NewRepository(fs.Config{
		Path:         resolvedPath,
		AutoInit:     autoInit,
		Gitless:      gitless,
		MustExist:    mustExist || (!autoInit && !useTemp),
		ReadOnly:     isReadOnly,
		Logger:       o.logger,
		SystemDir:    systemDir,
		EventBuffer:  eventBuffer,
		ErrorHandler: errorHandler,
	}), nil
}

// detectGitless decides the versioning mode when it is not configured.
// A vault with .git is versioned. Without .git, a fresh vault that is being
// auto-initialized gets git; an existing gitless vault (system dir present)
// or a plain folder stays gitless.
func detectGitless(path, systemDir string, autoInit bool) bool {
	if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
		return false
	}
	if !autoInit {
		return true
	}
	_, err := os.Stat(filepath.Join(path, systemDir))
	return err == nil
}
