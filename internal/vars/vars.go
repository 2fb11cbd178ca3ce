// Package vars assembles the toolchain-facing variable set handed to the
// build backend. It never touches the filesystem.
package vars

import (
	"sort"

	"github.com/cppkgs/concpp/internal/depstore"
	"github.com/cppkgs/concpp/recipe"
)

// Kind tags how a value is rendered for the backend.
type Kind int

const (
	String Kind = iota
	Bool
	Path
)

// Value is one typed configuration value.
type Value struct {
	Kind Kind
	Str  string
	On   bool
}

// Set maps configuration keys to typed values.
type Set map[string]Value

// SetString records a plain string value.
func (s Set) SetString(key, val string) { s[key] = Value{Kind: String, Str: val} }

// SetBool records an ON/OFF value.
func (s Set) SetBool(key string, on bool) { s[key] = Value{Kind: Bool, On: on} }

// SetPath records a path value, normalized to forward slashes. The build
// backend requires the normalized form on every host OS.
func (s Set) SetPath(key, p string) {
	s[key] = Value{Kind: Path, Str: depstore.Slash(p)}
}

// Keys returns the configuration keys in sorted order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Render returns the value in the backend's textual form.
func (v Value) Render() string {
	if v.Kind == Bool {
		if v.On {
			return "ON"
		}
		return "OFF"
	}
	return v.Str
}

// Build assembles the variable set from the normalized options and the
// resolved dependency table. Each library contributes its install root
// under its fixed key; the build-scope protobuf supplies the code
// generator. BOOST_DIR stays hard-coded off: only the legacy JDBC
// connector needs Boost and that subsystem is not built.
func Build(opts recipe.OptionSet, resolved map[depstore.Scope]map[string]depstore.Package) Set {
	host := resolved[depstore.Host]
	s := Set{}
	s.SetPath("WITH_SSL", host["openssl"].Root)
	s.SetPath("WITH_LZ4", host["lz4"].Root)
	s.SetPath("WITH_ZLIB", host["zlib"].Root)
	s.SetPath("WITH_ZSTD", host["zstd"].Root)
	s.SetPath("WITH_PROTOBUF", resolved[depstore.Build]["protobuf"].Root)

	s.SetBool("BUILD_STATIC", !opts.Shared)
	s.SetBool("BUILD_SHARED_LIBS", opts.Shared)

	s.SetString("BOOST_DIR", "FALSE")

	if opts.FPIC != nil {
		s.SetBool("CMAKE_POSITION_INDEPENDENT_CODE", *opts.FPIC)
	}
	return s
}
