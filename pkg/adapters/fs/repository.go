package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/git"
)

const (
	// NotesDir holds one file per note, named <id>.md.
	NotesDir = "notes"
	// DefaultSystemDir is the hidden directory for the cache, sequence and settings.
	DefaultSystemDir = ".jotter"

	noteExt      = ".md"
	sequenceFile = "sequence"
	settingsFile = "settings.yaml"
)

// Repository implements core.NoteRepository and core.SettingsRepository on the
// filesystem, optionally versioning every change with Git.
type Repository struct {
	Path   string
	git    *git.Client
	cache  *cache
	config Config
	writes *selfWrites

	// writeMu serializes mutations and id allocation.
	writeMu sync.Mutex

	mu            sync.RWMutex
	watcherActive bool
	lastEvent     *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path         string
	AutoInit     bool
	Gitless      bool
	MustExist    bool
	ReadOnly     bool
	Logger       *slog.Logger
	SystemDir    string // e.g. ".jotter"
	EventBuffer  int
	ErrorHandler func(error)
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = 100
	}
	return &Repository{
		Path:   config.Path,
		git:    git.NewClient(config.Path, config.SystemDir+".lock", config.Logger),
		config: config,
		cache:  newCache(config.Path, config.SystemDir),
		writes: newSelfWrites(2 * time.Second),
	}
}

// Initialize performs the necessary setup for the repository (mkdir, git init).
func (r *Repository) Initialize(ctx context.Context) error {
	// 1. Directory Initialization
	if r.config.MustExist || r.config.ReadOnly {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist: %s", r.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", r.Path)
		}
	}
	if !r.config.ReadOnly {
		if err := os.MkdirAll(r.notesDir(), 0755); err != nil {
			return fmt.Errorf("failed to create vault directory: %w", err)
		}
		if err := os.MkdirAll(r.systemDir(), 0755); err != nil {
			return fmt.Errorf("failed to create system directory: %w", err)
		}
	}

	// 2. Git Initialization
	if r.config.Gitless || r.config.ReadOnly {
		return nil
	}
	if !git.IsInstalled() {
		return fmt.Errorf("git is not installed")
	}

	wasNewRepo := false
	if !r.git.IsRepo() {
		if !r.config.AutoInit {
			return fmt.Errorf("path is not a git repository: %s", r.Path)
		}
		if err := r.git.Init(); err != nil {
			return fmt.Errorf("failed to git init: %w", err)
		}
		wasNewRepo = true
	}

	// Ensure .gitignore has the system directory
	mod, err := r.ensureIgnore()
	if err != nil {
		return fmt.Errorf("failed to ensure .gitignore: %w", err)
	}

	if mod && wasNewRepo {
		if err := r.git.Add(".gitignore"); err != nil {
			return fmt.Errorf("failed to add .gitignore: %w", err)
		}
		msg := git.FormatCommitMessage(git.CommitTypeChore, "", fmt.Sprintf("configure %s ignore", r.config.SystemDir), "")
		if err := r.git.Commit(msg); err != nil {
			return fmt.Errorf("failed to commit .gitignore: %w", err)
		}
	}
	return nil
}

func (r *Repository) ensureIgnore() (bool, error) {
	ignorePath := filepath.Join(r.Path, ".gitignore")
	entries := []string{r.config.SystemDir + "/", r.config.SystemDir + ".lock"}

	content, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	present := make(map[string]bool)
	for _, line := range strings.Split(string(content), "\n") {
		present[strings.TrimSpace(line)] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return false, nil
	}

	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return false, err
		}
	}
	if _, err := f.WriteString(strings.Join(missing, "\n") + "\n"); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repository) notesDir() string {
	return filepath.Join(r.Path, NotesDir)
}

func (r *Repository) systemDir() string {
	return filepath.Join(r.Path, r.config.SystemDir)
}

// noteRel returns the vault-relative slash path of a note file.
func noteRel(id int64) string {
	return NotesDir + "/" + strconv.FormatInt(id, 10) + noteExt
}

func (r *Repository) settingsRel() string {
	return r.config.SystemDir + "/" + settingsFile
}

// parseNoteRel extracts the id from a vault-relative note path.
func parseNoteRel(rel string) (int64, bool) {
	dir, name := filepath.Split(filepath.FromSlash(rel))
	if filepath.Clean(dir) != NotesDir || filepath.Ext(name) != noteExt {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSuffix(name, noteExt), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Insert persists a new note under the next free id.
func (r *Repository) Insert(ctx context.Context, n core.Note) (core.Note, error) {
	if r.config.ReadOnly {
		return core.Note{}, core.ErrReadOnly
	}
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	id, err := r.nextID()
	if err != nil {
		return core.Note{}, err
	}
	n.ID = id

	subject := fmt.Sprintf("create note %d", id)
	if err := r.writeNote(ctx, n, git.FormatCommitMessage(git.CommitTypeFeat, "notes", subject, n.Title)); err != nil {
		return core.Note{}, err
	}
	return n, nil
}

// Update overwrites an existing note.
func (r *Repository) Update(ctx context.Context, n core.Note) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if _, err := os.Stat(filepath.Join(r.Path, filepath.FromSlash(noteRel(n.ID)))); os.IsNotExist(err) {
		return core.ErrNotFound
	}
	subject := fmt.Sprintf("update note %d", n.ID)
	return r.writeNote(ctx, n, git.FormatCommitMessage(git.CommitTypeChore, "notes", subject, n.Title))
}

// writeNote serializes n atomically, refreshes the cache and records the change.
//
// Workflow:
//  1. Serialize frontmatter and content.
//  2. Write atomically and remember the checksum so the watcher skips it.
//  3. (If Git enabled) 'git add' and 'git commit' with the context change reason or defaultMsg.
func (r *Repository) writeNote(ctx context.Context, n core.Note, defaultMsg string) error {
	data, err := encodeNote(n)
	if err != nil {
		return fmt.Errorf("failed to serialize note: %w", err)
	}

	rel := noteRel(n.ID)
	full := filepath.Join(r.Path, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	r.writes.remember(rel, checksum(data))
	if err := writeFileAtomic(full, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if info, err := os.Stat(full); err == nil {
		r.cache.Set(rel, n, info.ModTime())
	}

	return r.record(ctx, rel, false, defaultMsg)
}

// record commits a change of rel when versioning is enabled.
func (r *Repository) record(ctx context.Context, rel string, removed bool, defaultMsg string) error {
	if r.config.Gitless {
		return nil
	}

	unlock, err := r.git.Lock(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	if removed {
		err = r.git.Rm(rel)
	} else {
		err = r.git.Add(rel)
	}
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", rel, err)
	}

	if !r.git.HasStagedChanges() {
		return nil
	}

	msg := defaultMsg
	if val, ok := ctx.Value(core.ChangeReasonKey).(string); ok && val != "" {
		msg = git.AppendFooter(val)
	}
	if err := r.git.Commit(msg); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}
	return nil
}

// Get retrieves a note from the filesystem.
func (r *Repository) Get(ctx context.Context, id int64) (core.Note, error) {
	if id <= 0 {
		return core.Note{}, core.ErrNotFound
	}
	return r.readNote(noteRel(id), id)
}

func (r *Repository) readNote(rel string, id int64) (core.Note, error) {
	full := filepath.Join(r.Path, filepath.FromSlash(rel))
	info, err := os.Stat(full)
	if os.IsNotExist(err) {
		return core.Note{}, core.ErrNotFound
	}
	if err != nil {
		return core.Note{}, err
	}
	if n, ok := r.cache.Get(rel, info.ModTime()); ok {
		return n, nil
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return core.Note{}, fmt.Errorf("failed to read note %d: %w", id, err)
	}
	n, err := decodeNote(data, info.ModTime())
	if err != nil {
		return core.Note{}, fmt.Errorf("failed to parse note %d: %w", id, err)
	}
	n.ID = id
	r.cache.Set(rel, n, info.ModTime())
	return n, nil
}

// List returns every note in the notes directory. Files that do not parse are
// skipped and logged.
func (r *Repository) List(ctx context.Context) ([]core.Note, error) {
	if err := r.cache.Load(); err != nil && r.config.Logger != nil {
		r.config.Logger.Warn("failed to load cache", "error", err)
	}

	entries, err := os.ReadDir(r.notesDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	var notes []core.Note
	seen := make(map[string]bool)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() {
			continue
		}
		rel := NotesDir + "/" + e.Name()
		id, ok := parseNoteRel(rel)
		if !ok {
			continue
		}
		seen[rel] = true

		n, err := r.readNote(rel, id)
		if err != nil {
			if r.config.Logger != nil {
				r.config.Logger.Warn("skipping unreadable note", "path", rel, "error", err)
			}
			continue
		}
		notes = append(notes, n)
	}

	r.cache.Prune(seen)
	if !r.config.ReadOnly {
		if err := r.cache.Save(); err != nil && r.config.Logger != nil {
			r.config.Logger.Warn("failed to save cache", "error", err)
		}
	}
	return notes, nil
}

// Delete removes a note.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	rel := noteRel(id)
	full := filepath.Join(r.Path, filepath.FromSlash(rel))
	if _, err := os.Stat(full); os.IsNotExist(err) {
		return core.ErrNotFound
	}

	r.writes.remember(rel, "")
	r.cache.Delete(rel)
	if err := os.Remove(full); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return r.record(ctx, rel, true, git.FormatCommitMessage(git.CommitTypeChore, "notes", fmt.Sprintf("delete note %d", id), ""))
}

// IsGitInstalled checks if git is available in the system PATH.
func IsGitInstalled() bool {
	return git.IsInstalled()
}
