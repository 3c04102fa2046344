package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// nextID allocates the next note id. The sequence file lives in the system
// directory, which is not versioned, so the highest id already on disk also
// bounds the result. Callers hold writeMu.
func (r *Repository) nextID() (int64, error) {
	path := filepath.Join(r.systemDir(), sequenceFile)

	var last int64
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		last, err = strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("corrupted sequence file %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return 0, fmt.Errorf("failed to read sequence: %w", err)
	}

	highest, err := r.highestID()
	if err != nil {
		return 0, err
	}
	next := max(last, highest) + 1

	if err := os.MkdirAll(r.systemDir(), 0755); err != nil {
		return 0, fmt.Errorf("failed to create system directory: %w", err)
	}
	if err := writeFileAtomic(path, []byte(strconv.FormatInt(next, 10)+"\n"), 0644); err != nil {
		return 0, fmt.Errorf("failed to store sequence: %w", err)
	}
	return next, nil
}

// highestID scans the notes directory for the largest id in use.
func (r *Repository) highestID() (int64, error) {
	entries, err := os.ReadDir(r.notesDir())
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to scan notes: %w", err)
	}

	var highest int64
	for _, e := range entries {
		if id, ok := parseNoteRel(NotesDir + "/" + e.Name()); ok && id > highest {
			highest = id
		}
	}
	return highest, nil
}
