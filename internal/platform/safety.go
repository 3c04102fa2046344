package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	// go run builds into the system temp dir.
	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}

	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolveVaultPath determines the actual vault path. With forceTemp the path is
// re-rooted under <tmp>/jotter-dev unless it already lives in the temp dir.
func ResolveVaultPath(userPath string, forceTemp bool) string {
	if !forceTemp {
		if userPath == "" {
			return "."
		}
		return userPath
	}

	cleanUserPath := filepath.Clean(userPath)
	if rel, err := filepath.Rel(os.TempDir(), cleanUserPath); err == nil && filepath.IsAbs(cleanUserPath) && !strings.HasPrefix(rel, "..") {
		return cleanUserPath
	}

	subName := "default"
	if userPath != "" && userPath != "." && userPath != "./" {
		subName = filepath.Base(cleanUserPath)
		if subName == "." || subName == string(os.PathSeparator) {
			subName = "default"
		}
	}
	return filepath.Join(os.TempDir(), "jotter-dev", subName)
}
