// Package assemble normalizes the install output into the published
// package layout after a successful build.
package assemble

import (
	"io"
	"os"
	"path/filepath"
)

// Installer is the build backend's install step.
type Installer interface {
	Install(dir string) error
}

// Assemble runs the post-build packaging steps: license copy, backend
// install, cleanup of build-only files and lib-dir normalization.
func Assemble(backend Installer, sourceDir, packageDir string) error {
	if err := CopyLicense(sourceDir, packageDir); err != nil {
		return err
	}
	if err := backend.Install(packageDir); err != nil {
		return err
	}
	if err := Clean(packageDir); err != nil {
		return err
	}
	return NormalizeLibDir(packageDir)
}

// CopyLicense copies LICENSE.txt from the source tree into the fixed
// licenses/ location of the package.
func CopyLicense(sourceDir, packageDir string) error {
	src, err := os.Open(filepath.Join(sourceDir, "LICENSE.txt"))
	if err != nil {
		return err
	}
	defer src.Close()

	licenseDir := filepath.Join(packageDir, "licenses")
	if err := os.MkdirAll(licenseDir, 0o755); err != nil {
		return err
	}
	dst, err := os.Create(filepath.Join(licenseDir, "LICENSE.txt"))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// Clean removes the build-artifact markers and leftover build-system
// scripts from the package root.
func Clean(packageDir string) error {
	for _, name := range []string{"INFO_SRC", "INFO_BIN"} {
		if err := os.Remove(filepath.Join(packageDir, name)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	matches, err := filepath.Glob(filepath.Join(packageDir, "*.cmake"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeLibDir renames a lib64 directory to the canonical lib name.
// Distributions that install to lib64 otherwise leak their convention
// into the consumption contract.
func NormalizeLibDir(packageDir string) error {
	lib64 := filepath.Join(packageDir, "lib64")
	if fi, err := os.Stat(lib64); err != nil || !fi.IsDir() {
		return nil
	}
	return os.Rename(lib64, filepath.Join(packageDir, "lib"))
}
