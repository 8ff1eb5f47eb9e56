// Package catalog provides commands describing the loaded catalog as a whole.
package catalog

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/shelfmap/cmd/application"
	"github.com/agentstation/shelfmap/internal/cmd/output"
)

// NewCategoriesCommand creates the categories command.
func NewCategoriesCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "categories",
		GroupID: "core",
		Short:   "List category codes and their books",
		Long: `Categories prints every category code found in the secondary export, in
first-seen order, with the normalized ISBNs filed under it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			groups := output.Categories(cat.Categories().Groups())
			if groups == nil {
				groups = output.Categories{}
			}
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), groups)
		},
	}
}

// NewFacetsCommand creates the facets command.
func NewFacetsCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "facets",
		GroupID: "core",
		Short:   "List the language and year filter options",
		Long: `Facets prints the distinct languages, in Spanish collation order, and the
distinct publication years, newest first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), output.Facets{
				Languages: nonNil(cat.Languages()),
				Years:     nonNil(cat.Years()),
			})
		},
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
