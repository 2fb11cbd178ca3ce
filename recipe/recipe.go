// Package recipe holds the platform facts, option set and consumption
// contract for the MySQL Connector/C++ build recipe.
package recipe

import "strings"

// OS identifies the target operating system of a resolution run.
type OS string

const (
	Linux   OS = "Linux"
	Windows OS = "Windows"
	Macos   OS = "Macos"
	IOS     OS = "iOS"
	TvOS    OS = "tvOS"
	WatchOS OS = "watchOS"
	FreeBSD OS = "FreeBSD"
)

// ParseOS decodes an OS name. Both the canonical names and Go's
// runtime.GOOS spellings are accepted.
func ParseOS(name string) (OS, bool) {
	switch strings.ToLower(name) {
	case "linux":
		return Linux, true
	case "windows":
		return Windows, true
	case "macos", "darwin":
		return Macos, true
	case "ios":
		return IOS, true
	case "tvos":
		return TvOS, true
	case "watchos":
		return WatchOS, true
	case "freebsd":
		return FreeBSD, true
	}
	return "", false
}

// Apple reports whether the OS belongs to the Apple family.
func (o OS) Apple() bool {
	switch o {
	case Macos, IOS, TvOS, WatchOS:
		return true
	}
	return false
}

// CompilerFamily is the closed set of compiler identities the recipe
// knows about. Raw compiler names are decoded once via ParseCompiler;
// everything downstream switches on the decoded value.
type CompilerFamily int

const (
	UnknownCompiler CompilerFamily = iota
	VisualStudio
	MSVC
	GCC
	Clang
	AppleClang
)

var compilerNames = map[string]CompilerFamily{
	"Visual Studio": VisualStudio,
	"msvc":          MSVC,
	"gcc":           GCC,
	"clang":         Clang,
	"apple-clang":   AppleClang,
}

// ParseCompiler decodes a raw compiler name. Unknown names map to
// UnknownCompiler, which the validator treats as unconstrained.
func ParseCompiler(name string) CompilerFamily {
	return compilerNames[name]
}

// String returns the canonical compiler name.
func (c CompilerFamily) String() string {
	for name, family := range compilerNames {
		if family == c {
			return name
		}
	}
	return "unknown"
}

// IsMSVC reports whether the family is a Microsoft toolchain.
func (c CompilerFamily) IsMSVC() bool {
	return c == MSVC || c == VisualStudio
}

// MSVCRuntime selects the MSVC C runtime linkage.
type MSVCRuntime string

const (
	StaticRuntime  MSVCRuntime = "static"
	DynamicRuntime MSVCRuntime = "dynamic"
)

// PlatformFacts describes the toolchain and target of one resolution run.
// It is supplied externally and never mutated.
type PlatformFacts struct {
	OS              OS
	Compiler        CompilerFamily
	CompilerVersion string
	Cppstd          string // explicit language-standard mode, empty if unset
	Arch            string
	CrossCompiling  bool
	MSVCRuntime     MSVCRuntime
}

// StaticMSVCRuntime reports whether the toolchain links the static MSVC
// runtime.
func (f PlatformFacts) StaticMSVCRuntime() bool {
	return f.Compiler.IsMSVC() && f.MSVCRuntime == StaticRuntime
}

// BuildType is the build variant of a package.
type BuildType string

const (
	Release BuildType = "Release"
	Debug   BuildType = "Debug"
)

// OptionSet is the user-selected option surface of the recipe.
// FPIC is a pointer so that normalization can remove it entirely,
// matching the option semantics of the package manager driving us.
type OptionSet struct {
	Shared    bool
	FPIC      *bool
	BuildType BuildType
}

// DefaultOptions returns the declared defaults: static, fPIC on, Release.
func DefaultOptions() OptionSet {
	fpic := true
	return OptionSet{Shared: false, FPIC: &fpic, BuildType: Release}
}

// Normalize returns the effective option set for the given platform.
// fPIC is meaningless on Windows and implied for shared builds, so it is
// dropped in both cases. The input is not modified.
func Normalize(opts OptionSet, facts PlatformFacts) OptionSet {
	out := opts
	if facts.OS == Windows || opts.Shared {
		out.FPIC = nil
	}
	if out.BuildType == "" {
		out.BuildType = Release
	}
	return out
}

// MinCppstd is the language standard the connector requires.
const MinCppstd = 17

// CppstdValue parses an explicit standard mode such as "17" or "gnu17".
// ok is false when the mode is empty or unparseable.
func CppstdValue(mode string) (n int, ok bool) {
	mode = strings.TrimPrefix(mode, "gnu")
	if mode == "" {
		return 0, false
	}
	for _, r := range mode {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
