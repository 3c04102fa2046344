package platform

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aretw0/jotter/pkg/adapters/fs"
)

// ErrRootNotFound is returned by FindRoot when no vault indicator exists above startDir.
var ErrRootNotFound = errors.New("vault root not found")

// ConfigFile is the optional per-vault configuration file.
const ConfigFile = "jotter.toml"

// FindRoot looks upwards from startDir for a vault root indicator:
// a .jotter directory, a jotter.toml file, or a .git directory.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for dir := abs; ; {
		if hasFile(dir, fs.DefaultSystemDir) || hasFile(dir, ConfigFile) || hasFile(dir, ".git") {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRootNotFound
		}
		dir = parent
	}
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
