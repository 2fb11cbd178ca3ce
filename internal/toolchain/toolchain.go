// Package toolchain validates that the configured compiler can build the
// connector at all. It gates the rest of the pipeline: a failure here is
// fatal and no resolution work is attempted.
package toolchain

import (
	"strings"

	"golang.org/x/mod/semver"

	"github.com/cppkgs/concpp/recipe"
)

// minVersions is the minimum compiler version with usable C++17 support,
// keyed by compiler family. Families absent from the table are treated as
// unconstrained, not as an error.
var minVersions = map[recipe.CompilerFamily]string{
	recipe.VisualStudio: "14",
	recipe.MSVC:         "192",
	recipe.GCC:          "8",
	recipe.Clang:        "7",
	recipe.AppleClang:   "10",
}

// Validate checks the language-standard mode and the compiler version
// against the support table. It has no side effects.
func Validate(facts recipe.PlatformFacts) error {
	if facts.Cppstd != "" {
		if n, ok := recipe.CppstdValue(facts.Cppstd); ok && !meetsCppstd(n) {
			return &recipe.UnsupportedToolchainError{
				Compiler: facts.Compiler,
				Version:  facts.CompilerVersion,
			}
		}
	}

	min, ok := minVersions[facts.Compiler]
	if !ok {
		return nil
	}
	if compareVersions(facts.CompilerVersion, min) < 0 {
		return &recipe.UnsupportedToolchainError{
			Compiler:   facts.Compiler,
			Version:    facts.CompilerVersion,
			MinVersion: min,
		}
	}
	return nil
}

// meetsCppstd reports whether an explicit standard mode satisfies the
// required minimum. Two-digit pre-C++11 modes (98) never do.
func meetsCppstd(n int) bool {
	if n >= 90 {
		return false
	}
	return n >= recipe.MinCppstd
}

// compareVersions compares dotted compiler versions such as "192", "9"
// or "10.0.1". semver handles shortened forms once a "v" is prefixed.
func compareVersions(a, b string) int {
	return semver.Compare(canonical(a), canonical(b))
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
