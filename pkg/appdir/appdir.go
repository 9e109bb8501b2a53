package appdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const dirName = ".hd-go"

var appDirCache string

// AppDir returns the per-user directory holding hd state such as the log
// database. An empty string means the home directory could not be resolved.
func AppDir() string {
	if appDirCache == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		appDirCache = filepath.Join(home, dirName)
	}
	return appDirCache
}

// Resolve returns name unchanged when it is absolute or contains a directory,
// otherwise the path of name inside AppDir, creating the directory on demand.
func Resolve(name string) (string, error) {
	if filepath.IsAbs(name) || filepath.Dir(name) != "." {
		return name, nil
	}
	dir := AppDir()
	if dir == "" {
		return name, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("appdir: cannot create %s: %w", dir, err)
	}
	return filepath.Join(dir, name), nil
}
