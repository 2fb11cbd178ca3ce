package internal

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/cppkgs/concpp/recipe"
)

// factsFlags collects the platform/option surface shared by the build
// and info commands.
type factsFlags struct {
	os              string
	compiler        string
	compilerVersion string
	cppstd          string
	arch            string
	cross           bool
	msvcRuntime     string

	shared    bool
	fpic      bool
	buildType string
}

func (f *factsFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.os, "os", runtime.GOOS, "Target operating system")
	flags.StringVar(&f.compiler, "compiler", defaultCompiler(), "Compiler family (gcc, clang, apple-clang, msvc, Visual Studio)")
	flags.StringVar(&f.compilerVersion, "compiler-version", "", "Compiler version (e.g. 9, 192, 10.0.1)")
	flags.StringVar(&f.cppstd, "cppstd", "", "Explicit C++ standard mode (e.g. 17, gnu17)")
	flags.StringVar(&f.arch, "arch", runtime.GOARCH, "Target architecture")
	flags.BoolVar(&f.cross, "cross", false, "Cross-compiling for a different architecture")
	flags.StringVar(&f.msvcRuntime, "msvc-runtime", "dynamic", "MSVC runtime linkage (static, dynamic)")

	flags.BoolVar(&f.shared, "shared", false, "Build a shared library instead of static")
	flags.BoolVar(&f.fpic, "fpic", true, "Build position-independent code")
	flags.StringVar(&f.buildType, "build-type", "Release", "Build type (Release, Debug)")
}

func defaultCompiler() string {
	switch runtime.GOOS {
	case "darwin":
		return "apple-clang"
	case "windows":
		return "msvc"
	}
	return "gcc"
}

func (f *factsFlags) facts() (recipe.PlatformFacts, error) {
	os, ok := recipe.ParseOS(f.os)
	if !ok {
		return recipe.PlatformFacts{}, fmt.Errorf("unknown os: %s", f.os)
	}
	return recipe.PlatformFacts{
		OS:              os,
		Compiler:        recipe.ParseCompiler(f.compiler),
		CompilerVersion: f.compilerVersion,
		Cppstd:          f.cppstd,
		Arch:            f.arch,
		CrossCompiling:  f.cross,
		MSVCRuntime:     recipe.MSVCRuntime(f.msvcRuntime),
	}, nil
}

func (f *factsFlags) options() (recipe.OptionSet, error) {
	switch recipe.BuildType(f.buildType) {
	case recipe.Release, recipe.Debug:
	default:
		return recipe.OptionSet{}, fmt.Errorf("unknown build type: %s", f.buildType)
	}
	fpic := f.fpic
	return recipe.OptionSet{
		Shared:    f.shared,
		FPIC:      &fpic,
		BuildType: recipe.BuildType(f.buildType),
	}, nil
}
