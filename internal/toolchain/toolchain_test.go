package toolchain

import (
	"errors"
	"testing"

	"github.com/cppkgs/concpp/recipe"
)

func TestValidateMinVersions(t *testing.T) {
	tests := []struct {
		name     string
		compiler recipe.CompilerFamily
		version  string
		wantErr  bool
	}{
		{"gcc at minimum", recipe.GCC, "8", false},
		{"gcc above minimum", recipe.GCC, "9", false},
		{"gcc below minimum", recipe.GCC, "7", true},
		{"msvc at minimum", recipe.MSVC, "192", false},
		{"msvc below minimum", recipe.MSVC, "191", true},
		{"visual studio", recipe.VisualStudio, "14", false},
		{"clang below minimum", recipe.Clang, "6.0", true},
		{"apple-clang dotted", recipe.AppleClang, "10.0.1", false},
		{"unknown family always passes", recipe.UnknownCompiler, "1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(recipe.PlatformFacts{
				Compiler:        tt.compiler,
				CompilerVersion: tt.version,
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var uerr *recipe.UnsupportedToolchainError
				if !errors.As(err, &uerr) {
					t.Fatalf("error type = %T, want *recipe.UnsupportedToolchainError", err)
				}
				if uerr.Compiler != tt.compiler {
					t.Errorf("error names compiler %v, want %v", uerr.Compiler, tt.compiler)
				}
			}
		})
	}
}

func TestValidateCppstd(t *testing.T) {
	tests := []struct {
		cppstd  string
		wantErr bool
	}{
		{"", false},
		{"17", false},
		{"gnu17", false},
		{"20", false},
		{"14", true},
		{"gnu14", true},
		{"98", true},
	}
	for _, tt := range tests {
		t.Run("cppstd="+tt.cppstd, func(t *testing.T) {
			err := Validate(recipe.PlatformFacts{
				Compiler:        recipe.GCC,
				CompilerVersion: "12",
				Cppstd:          tt.cppstd,
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
