// Package cmake wraps the cmake configure/build/install workflow behind
// the recipe engine's build-backend boundary.
package cmake

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/cppkgs/concpp/internal/depstore"
	"github.com/cppkgs/concpp/internal/vars"
	"github.com/cppkgs/concpp/recipe"
)

// CMake drives CMake-based builds. Failures are surfaced verbatim as
// *recipe.BackendError; the engine never retries or interprets them.
type CMake struct {
	sourceDir  string
	buildDir   string
	installDir string
	generator  string
	buildType  recipe.BuildType
	toolchain  string
}

// New returns a ready-to-use CMake.
func New(sourceDir, buildDir, installDir string) *CMake {
	return &CMake{
		sourceDir:  sourceDir,
		buildDir:   buildDir,
		installDir: installDir,
	}
}

// Source overrides the source directory.
func (c *CMake) Source(dir string) { c.sourceDir = dir }

// Generator sets the CMake generator (e.g. "Ninja", "Unix Makefiles").
func (c *CMake) Generator(name string) { c.generator = name }

// BuildType sets CMAKE_BUILD_TYPE.
func (c *CMake) BuildType(bt recipe.BuildType) { c.buildType = bt }

// Toolchain sets CMAKE_TOOLCHAIN_FILE.
func (c *CMake) Toolchain(path string) { c.toolchain = path }

// Use configures the process environment so that CMake and compilers find
// headers and libraries from a resolved dependency package.
func (c *CMake) Use(pkg depstore.Package) {
	prependPath("CMAKE_PREFIX_PATH", pkg.Root)
	if _, err := os.Stat(pkg.IncludeDir); err == nil {
		prependPath("CMAKE_INCLUDE_PATH", pkg.IncludeDir)
	}
	if _, err := os.Stat(pkg.LibDir); err == nil {
		prependPath("CMAKE_LIBRARY_PATH", pkg.LibDir)
	}
}

// Configure runs "cmake -S <source> -B <build>" with the resolved
// variable set. Extra args are appended at the end.
func (c *CMake) Configure(set vars.Set, args ...string) error {
	if err := os.MkdirAll(c.buildDir, 0o755); err != nil {
		return &recipe.BackendError{Stage: "configure", Err: err}
	}
	cmakeArgs := []string{"-S", c.sourceDir, "-B", c.buildDir}
	if c.generator != "" {
		cmakeArgs = append(cmakeArgs, "-G", c.generator)
	}
	if c.installDir != "" {
		cmakeArgs = append(cmakeArgs, define("CMAKE_INSTALL_PREFIX", "PATH", c.installDir))
	}
	if c.toolchain != "" {
		cmakeArgs = append(cmakeArgs, define("CMAKE_TOOLCHAIN_FILE", "FILEPATH", c.toolchain))
	}
	if c.buildType != "" {
		cmakeArgs = append(cmakeArgs, define("CMAKE_BUILD_TYPE", "STRING", string(c.buildType)))
	}
	for _, key := range set.Keys() {
		v := set[key]
		cmakeArgs = append(cmakeArgs, define(key, typeName(v), v.Render()))
	}
	cmakeArgs = append(cmakeArgs, args...)
	if err := c.run(cmakeArgs); err != nil {
		return &recipe.BackendError{Stage: "configure", Err: err}
	}
	return nil
}

// Build runs "cmake --build <build>" with optional extra arguments.
func (c *CMake) Build(args ...string) error {
	cmakeArgs := []string{"--build", c.buildDir}
	if c.buildType != "" {
		cmakeArgs = append(cmakeArgs, "--config", string(c.buildType))
	}
	cmakeArgs = append(cmakeArgs, args...)
	if err := c.run(cmakeArgs); err != nil {
		return &recipe.BackendError{Stage: "build", Err: err}
	}
	return nil
}

// Install runs "cmake --install <build>" into dir.
func (c *CMake) Install(dir string) error {
	cmakeArgs := []string{"--install", c.buildDir}
	if dir != "" {
		cmakeArgs = append(cmakeArgs, "--prefix", dir)
	}
	if err := c.run(cmakeArgs); err != nil {
		return &recipe.BackendError{Stage: "install", Err: err}
	}
	return nil
}

// OutputDir returns installDir if set, otherwise buildDir.
func (c *CMake) OutputDir() string {
	if c.installDir != "" {
		return c.installDir
	}
	return c.buildDir
}

func (c *CMake) run(args []string) error {
	cmd := exec.Command("cmake", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func define(key, typeName, value string) string {
	return "-D" + key + ":" + typeName + "=" + value
}

func typeName(v vars.Value) string {
	switch v.Kind {
	case vars.Bool:
		return "BOOL"
	case vars.Path:
		return "PATH"
	}
	return "STRING"
}

// prependPath prepends value to a PATH-style env var.
func prependPath(key, value string) {
	sep := ":"
	if runtime.GOOS == "windows" {
		sep = ";"
	}
	if cur := os.Getenv(key); cur != "" {
		value += sep + cur
	}
	os.Setenv(key, value)
}
