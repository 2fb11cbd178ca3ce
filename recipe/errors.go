package recipe

import "fmt"

// UnsupportedToolchainError reports a compiler below the minimum supported
// version, or a language-standard mode below the required one.
type UnsupportedToolchainError struct {
	Compiler   CompilerFamily
	Version    string
	MinVersion string
}

func (e *UnsupportedToolchainError) Error() string {
	if e.MinVersion == "" {
		return fmt.Sprintf("unsupported toolchain: %s %s lacks C++%d support", e.Compiler, e.Version, MinCppstd)
	}
	return fmt.Sprintf("unsupported toolchain: %s requires minimum version %s with C++%d support, got %s",
		e.Compiler, e.MinVersion, MinCppstd, e.Version)
}

// DependencyNotFoundError reports a required upstream package missing from
// the dependency store.
type DependencyNotFoundError struct {
	Name  string
	Scope string
}

func (e *DependencyNotFoundError) Error() string {
	return fmt.Sprintf("dependency not found: %s (scope %s)", e.Name, e.Scope)
}

// PatchError reports a strict patch rule whose target text is absent,
// which indicates an incompatible upstream source layout.
type PatchError struct {
	File string
	Find string
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("patch failed: %q not found in %s", e.Find, e.File)
}

// BackendError wraps an opaque build-backend failure. Stage is one of
// "configure", "build" or "install". The failure is surfaced verbatim and
// never retried or interpreted.
type BackendError struct {
	Stage string
	Err   error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s failed: %v", e.Stage, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// FetchError reports a failure to materialize the source tree.
type FetchError struct {
	Version string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Version, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
