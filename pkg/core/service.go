package core

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/jotter/pkg/palette"
)

// Service handles the business logic for notes and settings.
type Service struct {
	mu              sync.RWMutex
	repo            NoteRepository
	settings        SettingsRepository
	logger          *slog.Logger
	now             func() time.Time
	eventBufferSize int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the time source used to stamp notes.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithEventBuffer records the buffer size used by watch channels.
func WithEventBuffer(size int) ServiceOption {
	return func(s *Service) {
		s.eventBufferSize = size
	}
}

// NewService creates a new Service. settings may be nil, in which case
// preferences are not persisted and defaults are returned.
func NewService(repo NoteRepository, settings SettingsRepository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:     repo,
		settings: settings,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveNote inserts the note when its ID is zero and updates it otherwise.
// Timestamps are stamped, the scheduled date is moved to local midnight and
// unset colors get their defaults.
func (s *Service) SaveNote(ctx context.Context, n Note) (Note, error) {
	if n.ID < 0 {
		return Note{}, ErrInvalidID
	}

	now := s.now()
	if n.ScheduledDate != nil {
		day := StartOfDay(*n.ScheduledDate)
		n.ScheduledDate = &day
	}
	if n.TextColor == 0 {
		n.TextColor = palette.DefaultText
	}
	if n.BackgroundColor == 0 {
		n.BackgroundColor = palette.DefaultBackground
	}
	n.UpdatedAt = now

	if n.ID == 0 {
		if n.CreatedAt.IsZero() {
			n.CreatedAt = now
		}
		saved, err := s.repo.Insert(ctx, n)
		if err != nil {
			return Note{}, fmt.Errorf("failed to insert note: %w", err)
		}
		if s.logger != nil {
			s.logger.Debug("note created", "id", saved.ID)
		}
		return saved, nil
	}

	existing, err := s.repo.Get(ctx, n.ID)
	if err != nil {
		return Note{}, err
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = existing.CreatedAt
	}
	if err := s.repo.Update(ctx, n); err != nil {
		return Note{}, fmt.Errorf("failed to update note %d: %w", n.ID, err)
	}
	if s.logger != nil {
		s.logger.Debug("note updated", "id", n.ID)
	}
	return n, nil
}

// GetNote retrieves a note.
func (s *Service) GetNote(ctx context.Context, id int64) (Note, error) {
	if id <= 0 {
		return Note{}, ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

// ListNotes returns every note, newest first.
func (s *Service) ListNotes(ctx context.Context) ([]Note, error) {
	notes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(notes, func(a, b Note) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return notes, nil
}

// NotesOn returns the notes whose calendar day (scheduled date, else creation
// date) is the local day of day, newest first.
func (s *Service) NotesOn(ctx context.Context, day time.Time) ([]Note, error) {
	notes, err := s.ListNotes(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(notes, func(n Note) bool {
		return !SameDay(n.Day(), day)
	}), nil
}

// ScheduledNotes returns the notes that carry a scheduled date, soonest first.
func (s *Service) ScheduledNotes(ctx context.Context) ([]Note, error) {
	notes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	notes = slices.DeleteFunc(notes, func(n Note) bool { return n.ScheduledDate == nil })
	slices.SortFunc(notes, func(a, b Note) int {
		if c := a.ScheduledDate.Compare(*b.ScheduledDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return notes, nil
}

// DeleteNote removes a note.
func (s *Service) DeleteNote(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Debug("note deleted", "id", id)
	}
	return nil
}

// Settings returns the stored preferences, or the defaults.
func (s *Service) Settings(ctx context.Context) (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadSettings(ctx)
}

func (s *Service) loadSettings(ctx context.Context) (Settings, error) {
	if s.settings == nil {
		return DefaultSettings(), nil
	}
	st, err := s.settings.GetSettings(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return st.Normalize(), nil
}

// UpdateSettings normalizes and stores st.
func (s *Service) UpdateSettings(ctx context.Context, st Settings) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storeSettings(ctx, st)
}

func (s *Service) storeSettings(ctx context.Context, st Settings) (Settings, error) {
	st = st.Normalize()
	if s.settings == nil {
		return st, nil
	}
	if err := s.settings.UpdateSettings(ctx, st); err != nil {
		return Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return st, nil
}

func (s *Service) modifySettings(ctx context.Context, fn func(*Settings)) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadSettings(ctx)
	if err != nil {
		return Settings{}, err
	}
	fn(&st)
	return s.storeSettings(ctx, st)
}

// SetDarkTheme switches the theme.
func (s *Service) SetDarkTheme(ctx context.Context, dark bool) (Settings, error) {
	return s.modifySettings(ctx, func(st *Settings) { st.DarkTheme = dark })
}

// SetFont selects a font family. Unknown families fall back to the default.
func (s *Service) SetFont(ctx context.Context, family string) (Settings, error) {
	return s.modifySettings(ctx, func(st *Settings) { st.FontFamily = family })
}

// SetFontSize sets the font size, clamped to the supported range.
func (s *Service) SetFontSize(ctx context.Context, size float64) (Settings, error) {
	return s.modifySettings(ctx, func(st *Settings) { st.FontSize = size })
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.Watch(ctx, pattern)
}
