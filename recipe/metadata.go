package recipe

import "path"

// Contract is the published description of how a consumer links against
// the built connector. It is a pure function of the option/platform state
// used during the build; it never inspects the built artifact.
type Contract struct {
	CanonicalTarget string   `json:"canonical_target"`
	AliasTargets    []string `json:"alias_targets"`
	Library         string   `json:"library"`
	LibDirs         []string `json:"lib_dirs"`
	SystemLibs      []string `json:"system_libs"`
	Defines         []string `json:"defines"`
}

const (
	canonicalTarget = "mysql::concpp"
	libBaseName     = "mysqlcppconnx"
)

// Metadata computes the consumption contract for the given platform facts
// and an already-normalized option set.
func Metadata(facts PlatformFacts, opts OptionSet) Contract {
	c := Contract{CanonicalTarget: canonicalTarget}

	libDir := "lib"
	if opts.BuildType == Debug {
		libDir = path.Join("lib", "debug")
	}
	if facts.Compiler.IsMSVC() {
		libDir = path.Join(libDir, "vs14")
	}
	c.LibDirs = []string{libDir}

	if facts.OS.Apple() || facts.OS == Linux || facts.OS == FreeBSD {
		c.SystemLibs = append(c.SystemLibs, "resolv")
		if facts.OS == Linux || facts.OS == FreeBSD {
			c.SystemLibs = append(c.SystemLibs, "m", "pthread")
		}
	}

	// The upstream install layout appends -static to the alias of shared
	// builds. Historical naming, kept for compatibility.
	alias := "concpp"
	if opts.Shared {
		alias += "-static"
	}
	if opts.BuildType == Debug {
		alias += "-debug"
	}
	c.AliasTargets = []string{"mysql::" + alias}

	lib := libBaseName
	if !opts.Shared {
		lib += "-static"
		if facts.StaticMSVCRuntime() {
			lib += "-mt"
		}
	}
	c.Library = lib

	if !opts.Shared {
		c.Defines = []string{"STATIC_CONCPP"}
	}
	return c
}
