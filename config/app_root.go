package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// executable is swapped in tests.
var executable = os.Executable

// ResolveRootDir returns the absolute directory the application reads its
// runtime files from. During development explicit is set from PETT_ROOT_DIR
// and points at the project root; otherwise the directory containing the
// running executable is used.
func ResolveRootDir(explicit string) (string, error) {
	if explicit != "" {
		dir, err := filepath.Abs(explicit)
		if err != nil {
			return "", fmt.Errorf("failed to resolve root directory %s: %w", explicit, err)
		}
		return dir, nil
	}

	exe, err := executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	dir := filepath.Dir(exe)
	if dir == "" || dir == "." {
		return "", errors.New("failed to find an application root")
	}
	return filepath.Abs(dir)
}
