// Package depstore resolves the recipe's upstream dependencies to the
// concrete install locations of already-built packages.
package depstore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cppkgs/concpp/recipe"
)

// Scope distinguishes a dependency linked into the target (host) from one
// that only runs during the build, such as a code generator.
type Scope string

const (
	Host  Scope = "host"
	Build Scope = "build"
)

// Dependency declares one required upstream package.
type Dependency struct {
	Name    string
	Version string // version constraint, informational
	Scope   Scope
}

// Requirements is the fixed dependency set of the connector.
var Requirements = []Dependency{
	{Name: "openssl", Version: "[>=1.1 <4]", Scope: Host},
	{Name: "zlib", Version: "[>=1.2.11 <2]", Scope: Host},
	{Name: "protobuf", Version: "3.21.12", Scope: Host},
	{Name: "zstd", Version: "[>=1.5 <1.6]", Scope: Host},
	{Name: "lz4", Version: "1.10.0", Scope: Host},
	{Name: "protobuf", Version: "3.21.12", Scope: Build},
}

// Package is a resolved dependency: the install root of a built package
// and its conventional include/lib subdirectories. All paths use forward
// slashes, which is the form the build backend requires on every host.
type Package struct {
	Root       string
	IncludeDir string
	LibDir     string
	BuildType  recipe.BuildType
}

// Store looks up installed packages. Lookups must be idempotent within a
// resolution run: the same name+scope always resolves identically.
type Store interface {
	Resolve(name string, scope Scope) (Package, error)
}

// ResolveAll resolves every declared dependency, keyed by scope then name.
// The first missing dependency aborts resolution.
func ResolveAll(store Store, deps []Dependency) (map[Scope]map[string]Package, error) {
	out := map[Scope]map[string]Package{Host: {}, Build: {}}
	for _, d := range deps {
		pkg, err := store.Resolve(d.Name, d.Scope)
		if err != nil {
			return nil, err
		}
		out[d.Scope][d.Name] = pkg
	}
	return out, nil
}

// DirStore resolves packages from a directory layout
// <root>/<scope>/<name>/ with conventional include/ and lib/ subdirs.
// A package built as Debug marks itself with a ".build_type" file;
// everything else is treated as Release.
type DirStore struct {
	Root string
}

func (s DirStore) Resolve(name string, scope Scope) (Package, error) {
	root := filepath.Join(s.Root, string(scope), name)
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		return Package{}, &recipe.DependencyNotFoundError{Name: name, Scope: string(scope)}
	}
	bt := recipe.Release
	if data, err := os.ReadFile(filepath.Join(root, ".build_type")); err == nil {
		if strings.TrimSpace(string(data)) == string(recipe.Debug) {
			bt = recipe.Debug
		}
	}
	return Package{
		Root:       Slash(root),
		IncludeDir: Slash(filepath.Join(root, "include")),
		LibDir:     Slash(filepath.Join(root, "lib")),
		BuildType:  bt,
	}, nil
}

// Slash normalizes a path to forward-slash separators.
func Slash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
