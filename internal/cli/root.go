// Package cli implements catalogctl, the operator tool for inspecting and
// seeding the project catalog.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodeVantage/codevantage-backend/internal/catalog/domain"
	"github.com/CodeVantage/codevantage-backend/internal/catalog/loader"
)

// NewRootCmd builds the command tree. Commands write to cmd.OutOrStdout().
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "catalogctl",
		Short: "Inspect, validate and seed the CodeVantage project catalog",
		Long: `catalogctl works on the same catalog the API serves.

Without --file it reads the catalog bundled with the binary. Files may be
JSON or YAML, either a bare list of projects or {"projects": [...]}.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newFilterCmd(),
		newValidateCmd(),
		newSeedCmd(),
		newOptionsCmd(),
	)
	return root
}

// Execute runs the root command
func Execute(version string) {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadRecords(file string) ([]domain.ProjectRecord, error) {
	if file == "" {
		return loader.LoadEmbedded()
	}
	return loader.LoadFile(file)
}
