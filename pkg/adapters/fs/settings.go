package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/jotter/pkg/core"
)

// GetSettings reads the settings file, returning defaults when it does not exist.
// Keys missing from the file keep their default values.
func (r *Repository) GetSettings(ctx context.Context) (core.Settings, error) {
	st := core.DefaultSettings()

	data, err := os.ReadFile(filepath.Join(r.Path, filepath.FromSlash(r.settingsRel())))
	if os.IsNotExist(err) {
		return st, nil
	}
	if err != nil {
		return core.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &st); err != nil {
		return core.Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	return st, nil
}

// UpdateSettings replaces the settings file.
func (r *Repository) UpdateSettings(ctx context.Context, st core.Settings) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	rel := r.settingsRel()
	full := filepath.Join(r.Path, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create system directory: %w", err)
	}

	r.writes.remember(rel, checksum(data))
	if err := writeFileAtomic(full, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	if r.config.Logger != nil {
		r.config.Logger.Debug("settings saved", "dark", st.DarkTheme, "font", st.FontFamily, "size", st.FontSize)
	}
	return nil
}

var (
	_ core.NoteRepository     = (*Repository)(nil)
	_ core.SettingsRepository = (*Repository)(nil)
	_ core.Watchable          = (*Repository)(nil)
)
