// Package engine drives one resolution run: validate, resolve
// dependencies, build the variable set, patch the source tree, invoke the
// build backend, assemble the package and emit the consumption contract.
// Stages run strictly in order; the first failure aborts the run.
package engine

import (
	"github.com/qiniu/x/log"

	"github.com/cppkgs/concpp/internal/assemble"
	"github.com/cppkgs/concpp/internal/depstore"
	"github.com/cppkgs/concpp/internal/patch"
	"github.com/cppkgs/concpp/internal/toolchain"
	"github.com/cppkgs/concpp/internal/vars"
	"github.com/cppkgs/concpp/recipe"
)

// Backend is the opaque native build tool. It accepts the resolved
// variable set and either succeeds or fails; the engine never interprets
// its failures.
type Backend interface {
	// Use injects a resolved dependency into the build environment.
	Use(pkg depstore.Package)

	// BuildType selects the build variant.
	BuildType(bt recipe.BuildType)

	// Lifecycle.
	Configure(set vars.Set, args ...string) error
	Build(args ...string) error
	Install(dir string) error
}

// Pipeline is one resolution run. It owns its source tree and package
// directory exclusively; a failed run leaves both in an undefined state
// and a fresh run starts from clean copies.
type Pipeline struct {
	Facts      recipe.PlatformFacts
	Options    recipe.OptionSet
	Store      depstore.Store
	Backend    Backend
	SourceDir  string
	PackageDir string
}

// Run executes the pipeline and returns the consumption contract.
func (p *Pipeline) Run() (recipe.Contract, error) {
	log.Info("validating toolchain:", p.Facts.Compiler, p.Facts.CompilerVersion)
	if err := toolchain.Validate(p.Facts); err != nil {
		return recipe.Contract{}, err
	}

	opts := recipe.Normalize(p.Options, p.Facts)

	log.Info("resolving dependencies")
	resolved, err := depstore.ResolveAll(p.Store, depstore.Requirements)
	if err != nil {
		return recipe.Contract{}, err
	}

	set := vars.Build(opts, resolved)
	for _, key := range set.Keys() {
		log.Debugf("var %s=%s", key, set[key].Render())
	}

	log.Info("patching source tree:", p.SourceDir)
	in := patch.Input{
		Facts:   p.Facts,
		Options: opts,
		Codegen: resolved[depstore.Build]["protobuf"],
	}
	if err := patch.Apply(patch.DirFS(p.SourceDir), in, patch.Rules(in)); err != nil {
		return recipe.Contract{}, err
	}

	for _, pkg := range resolved[depstore.Host] {
		p.Backend.Use(pkg)
	}
	p.Backend.BuildType(opts.BuildType)

	log.Info("configuring build")
	if err := p.Backend.Configure(set); err != nil {
		return recipe.Contract{}, err
	}
	log.Info("building")
	if err := p.Backend.Build(); err != nil {
		return recipe.Contract{}, err
	}

	log.Info("assembling package:", p.PackageDir)
	if err := assemble.Assemble(p.Backend, p.SourceDir, p.PackageDir); err != nil {
		return recipe.Contract{}, err
	}

	return recipe.Metadata(p.Facts, opts), nil
}
