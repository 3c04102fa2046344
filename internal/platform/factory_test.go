package platform_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/internal/platform"
	"github.com/aretw0/jotter/pkg/adapters/fs"
	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/git"
)

func TestInit(t *testing.T) {
	t.Run("AutoInit=true Creates Vault", func(t *testing.T) {
		vaultPath := filepath.Join(t.TempDir(), "vault")

		repo, err := platform.Init(vaultPath, platform.WithAutoInit(true), platform.WithVersioning(false))
		require.NoError(t, err)

		fsRepo, ok := repo.(*fs.Repository)
		require.True(t, ok, "expected fs repository")
		assert.Equal(t, vaultPath, fsRepo.Path)
		assert.DirExists(t, filepath.Join(vaultPath, fs.NotesDir))
		assert.NoDirExists(t, filepath.Join(vaultPath, ".git"))
	})

	t.Run("AutoInit=false Fails if Directory Missing", func(t *testing.T) {
		vaultPath := filepath.Join(t.TempDir(), "missing")

		_, err := platform.Init(vaultPath, platform.WithAutoInit(false), platform.WithMustExist(true))
		assert.Error(t, err)
	})

	t.Run("Fresh Vault Defaults to Git", func(t *testing.T) {
		if !git.IsInstalled() {
			t.Skip("git not installed")
		}
		t.Setenv("GIT_AUTHOR_NAME", "jotter")
		t.Setenv("GIT_AUTHOR_EMAIL", "jotter@example.com")
		t.Setenv("GIT_COMMITTER_NAME", "jotter")
		t.Setenv("GIT_COMMITTER_EMAIL", "jotter@example.com")
		vaultPath := filepath.Join(t.TempDir(), "versioned")

		_, err := platform.Init(vaultPath, platform.WithAutoInit(true))
		require.NoError(t, err)
		assert.DirExists(t, filepath.Join(vaultPath, ".git"))
	})

	t.Run("Existing Gitless Vault Stays Gitless", func(t *testing.T) {
		vaultPath := filepath.Join(t.TempDir(), "plain")
		require.NoError(t, os.MkdirAll(filepath.Join(vaultPath, ".jotter"), 0755))

		repo, err := platform.Init(vaultPath, platform.WithAutoInit(true))
		require.NoError(t, err)

		state := repo.(*fs.Repository).State().(fs.RepositoryState)
		assert.True(t, state.Gitless)
	})

	t.Run("Custom System Dir", func(t *testing.T) {
		vaultPath := filepath.Join(t.TempDir(), "custom")

		_, err := platform.Init(vaultPath,
			platform.WithAutoInit(true),
			platform.WithVersioning(false),
			platform.WithSystemDir(".notes-meta"),
		)
		require.NoError(t, err)
		assert.DirExists(t, filepath.Join(vaultPath, ".notes-meta"))
	})

	t.Run("Injected Repository Is Returned As Is", func(t *testing.T) {
		injected := fs.NewRepository(fs.Config{Path: t.TempDir(), Gitless: true})

		repo, err := platform.Init("ignored", platform.WithRepository(injected))
		require.NoError(t, err)
		assert.Same(t, injected, repo)
	})
}

func TestNew(t *testing.T) {
	t.Run("Wires Notes And Settings", func(t *testing.T) {
		clock := time.Date(2024, 3, 10, 9, 30, 0, 0, time.Local)
		svc, err := platform.New(t.TempDir(),
			platform.WithAutoInit(true),
			platform.WithVersioning(false),
			platform.WithClock(func() time.Time { return clock }),
		)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		n, err := svc.SaveNote(ctx, core.Note{Title: "groceries", Content: "• milk"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n.ID)
		assert.True(t, n.CreatedAt.Equal(clock))

		_, err = svc.SetDarkTheme(ctx, true)
		require.NoError(t, err)
		st, err := svc.Settings(ctx)
		require.NoError(t, err)
		assert.True(t, st.DarkTheme)

		events, err := svc.Watch(ctx, "")
		assert.NoError(t, err)
		assert.NotNil(t, events)
	})

	t.Run("Read Only Rejects Writes", func(t *testing.T) {
		dir := t.TempDir()
		_, err := platform.New(dir, platform.WithAutoInit(true), platform.WithVersioning(false))
		require.NoError(t, err)

		svc, err := platform.New(dir, platform.WithReadOnly(true))
		require.NoError(t, err)

		_, err = svc.SaveNote(context.Background(), core.Note{Title: "nope"})
		assert.True(t, errors.Is(err, core.ErrReadOnly))
	})
}
