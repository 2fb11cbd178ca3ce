// Package patch applies conditional textual transformations to the
// materialized source tree before the build backend runs. The patch
// catalogue is data-driven: an ordered list of rules evaluated by a
// single interpreter, so it can be tested without a real source tree.
package patch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cppkgs/concpp/internal/depstore"
	"github.com/cppkgs/concpp/recipe"
)

// FS is the minimal filesystem surface the interpreter needs. Tests
// inject an in-memory implementation; production uses DirFS.
type FS interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
}

// Input is the state a rule predicate may inspect.
type Input struct {
	Facts   recipe.PlatformFacts
	Options recipe.OptionSet
	// Codegen is the resolved build-tool variant of the schema compiler.
	// Its build type selects the library name the patched source must
	// reference.
	Codegen depstore.Package
}

// Rule is one conditional find-and-replace on a single file. A strict
// rule whose find-text is absent is a fatal error; a tolerant rule is a
// no-op, so patches survive upstream source drift.
type Rule struct {
	File    string
	Find    string
	Replace string
	Strict  bool
	When    func(Input) bool
}

// Apply evaluates the rules in order against fsys. Each rule is applied
// at most once. Apply is not safe to re-run blindly on an already-patched
// tree: tolerant rules are naturally idempotent, strict rules are not.
func Apply(fsys FS, in Input, rules []Rule) error {
	for _, r := range rules {
		if r.When != nil && !r.When(in) {
			continue
		}
		data, err := fsys.ReadFile(r.File)
		if err != nil {
			if !r.Strict {
				continue
			}
			return &recipe.PatchError{File: r.File, Find: r.Find}
		}
		text := string(data)
		if !strings.Contains(text, r.Find) {
			if !r.Strict {
				continue
			}
			return &recipe.PatchError{File: r.File, Find: r.Find}
		}
		text = strings.ReplaceAll(text, r.Find, r.Replace)
		if err := fsys.WriteFile(r.File, []byte(text)); err != nil {
			return err
		}
	}
	return nil
}

// DirFS roots an FS at a source tree directory.
type DirFS string

func (d DirFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(string(d), filepath.FromSlash(name)))
}

func (d DirFS) WriteFile(name string, data []byte) error {
	return os.WriteFile(filepath.Join(string(d), filepath.FromSlash(name)), data, 0o644)
}

// MemFS is an in-memory FS for tests.
type MemFS map[string][]byte

func (m MemFS) ReadFile(name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return data, nil
}

func (m MemFS) WriteFile(name string, data []byte) error {
	m[name] = data
	return nil
}
