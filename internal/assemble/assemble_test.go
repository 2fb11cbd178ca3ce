package assemble

import (
	"os"
	"path/filepath"
	"testing"
)

type fakeInstaller struct {
	dir string
	fn  func(dir string) error
}

func (f *fakeInstaller) Install(dir string) error {
	f.dir = dir
	if f.fn != nil {
		return f.fn(dir)
	}
	return nil
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestAssemble(t *testing.T) {
	sourceDir := t.TempDir()
	packageDir := t.TempDir()
	write(t, filepath.Join(sourceDir, "LICENSE.txt"), "GPL-2.0-only")

	installer := &fakeInstaller{fn: func(dir string) error {
		write(t, filepath.Join(dir, "INFO_SRC"), "")
		write(t, filepath.Join(dir, "INFO_BIN"), "")
		write(t, filepath.Join(dir, "mysql-concpp-config.cmake"), "")
		write(t, filepath.Join(dir, "lib64", "libmysqlcppconnx-static.a"), "")
		return nil
	}}

	if err := Assemble(installer, sourceDir, packageDir); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if installer.dir != packageDir {
		t.Errorf("install dir = %q, want %q", installer.dir, packageDir)
	}

	data, err := os.ReadFile(filepath.Join(packageDir, "licenses", "LICENSE.txt"))
	if err != nil {
		t.Fatalf("license not copied: %v", err)
	}
	if string(data) != "GPL-2.0-only" {
		t.Errorf("license content = %q", data)
	}

	for _, gone := range []string{"INFO_SRC", "INFO_BIN", "mysql-concpp-config.cmake", "lib64"} {
		if _, err := os.Stat(filepath.Join(packageDir, gone)); !os.IsNotExist(err) {
			t.Errorf("%s still present after assemble", gone)
		}
	}
	if _, err := os.Stat(filepath.Join(packageDir, "lib", "libmysqlcppconnx-static.a")); err != nil {
		t.Errorf("lib64 not renamed to lib: %v", err)
	}
}

func TestNormalizeLibDirNoop(t *testing.T) {
	dir := t.TempDir()
	if err := NormalizeLibDir(dir); err != nil {
		t.Fatalf("NormalizeLibDir without lib64: %v", err)
	}
}

func TestCleanIgnoresMissingMarkers(t *testing.T) {
	if err := Clean(t.TempDir()); err != nil {
		t.Fatalf("Clean on empty dir: %v", err)
	}
}
