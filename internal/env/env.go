// Package env locates the engine's per-user working directories.
package env

import (
	"os"
	"path/filepath"
)

// WorkDir returns the root working directory for recipe runs.
func WorkDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, ".concpp"), nil
}

// StoreDir returns the default dependency store location.
func StoreDir() (string, error) {
	workDir, err := WorkDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(workDir, "store"), nil
}

// SourceDir returns the source tree location for one upstream version.
func SourceDir(version string) (string, error) {
	workDir, err := WorkDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(workDir, "src", version), nil
}

// PackageDir returns the package output location for one upstream version.
func PackageDir(version string) (string, error) {
	workDir, err := WorkDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(workDir, "pkg", version), nil
}
