package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cppkgs/concpp/internal/depstore"
	"github.com/cppkgs/concpp/internal/engine"
	"github.com/cppkgs/concpp/internal/env"
	"github.com/cppkgs/concpp/internal/fetch"
	"github.com/cppkgs/concpp/x/cmake"
)

var buildFacts factsFlags

var (
	buildVersion    string
	buildStoreDir   string
	buildSourceDir  string
	buildPackageDir string
	buildGenerator  string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build and package the connector",
	Long: `Build fetches the connector source for the requested version, resolves
the dependency store, patches the tree, runs the CMake build and writes
the consumption contract next to the package.`,
	RunE: runBuild,
}

func init() {
	buildFacts.register(buildCmd)
	buildCmd.Flags().StringVar(&buildVersion, "version", "9.2.0", "Upstream connector version")
	buildCmd.Flags().StringVar(&buildStoreDir, "store", "", "Dependency store root (default: user cache)")
	buildCmd.Flags().StringVar(&buildSourceDir, "source-dir", "", "Reuse an already materialized source tree")
	buildCmd.Flags().StringVar(&buildPackageDir, "package-dir", "", "Package output directory (default: user cache)")
	buildCmd.Flags().StringVar(&buildGenerator, "generator", "", "CMake generator")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	facts, err := buildFacts.facts()
	if err != nil {
		return err
	}
	opts, err := buildFacts.options()
	if err != nil {
		return err
	}

	sourceDir := buildSourceDir
	if sourceDir == "" {
		sourceDir, err = env.SourceDir(buildVersion)
		if err != nil {
			return err
		}
		if err := materialize(cmd.Context(), buildVersion, sourceDir); err != nil {
			return err
		}
	}

	storeDir := buildStoreDir
	if storeDir == "" {
		if storeDir, err = env.StoreDir(); err != nil {
			return err
		}
	}
	packageDir := buildPackageDir
	if packageDir == "" {
		if packageDir, err = env.PackageDir(buildVersion); err != nil {
			return err
		}
	}

	backend := cmake.New(sourceDir, filepath.Join(sourceDir, "build"), packageDir)
	if buildGenerator != "" {
		backend.Generator(buildGenerator)
	}

	p := &engine.Pipeline{
		Facts:      facts,
		Options:    opts,
		Store:      depstore.DirStore{Root: storeDir},
		Backend:    backend,
		SourceDir:  sourceDir,
		PackageDir: packageDir,
	}
	contract, err := p.Run()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(contract, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(packageDir, "contract.json"), data, 0o644); err != nil {
		return fmt.Errorf("write consumption contract: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// materialize fetches the source tree unless one is already present.
func materialize(ctx context.Context, version, dir string) error {
	if _, err := os.Stat(filepath.Join(dir, "CMakeLists.txt")); err == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	fetcher, err := fetch.NewFetcher()
	if err != nil {
		return err
	}
	return fetcher.Fetch(ctx, version, dir)
}
