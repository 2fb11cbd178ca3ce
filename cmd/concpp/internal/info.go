package internal

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cppkgs/concpp/internal/toolchain"
	"github.com/cppkgs/concpp/recipe"
)

var infoFacts factsFlags

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the consumption contract for a configuration",
	Long: `Info validates the toolchain and prints the consumption contract the
given configuration would produce, without building anything.`,
	RunE: runInfo,
}

func init() {
	infoFacts.register(infoCmd)
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	facts, err := infoFacts.facts()
	if err != nil {
		return err
	}
	opts, err := infoFacts.options()
	if err != nil {
		return err
	}
	if err := toolchain.Validate(facts); err != nil {
		return err
	}

	contract := recipe.Metadata(facts, recipe.Normalize(opts, facts))
	data, err := json.MarshalIndent(contract, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
