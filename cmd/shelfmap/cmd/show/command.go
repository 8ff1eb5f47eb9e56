// Package show provides the show command.
package show

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/shelfmap/cmd/application"
	"github.com/agentstation/shelfmap/internal/cmd/completion"
	"github.com/agentstation/shelfmap/internal/cmd/output"
	"github.com/agentstation/shelfmap/pkg/catalogs"
)

// NewCommand creates the show command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "show <isbn>",
		GroupID: "core",
		Short:   "Show one book in detail",
		Long: `Show prints the detail view of a book. The ISBN is matched after removing
hyphens, spaces and case, so 978-0-13-468599-1 finds 9780134685991.`,
		Example: `  shelfmap show 9788437604947
  shelfmap show 978-84-376-0494-7 -o yaml`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.ISBNs(app.Catalog),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			detail, err := catalogs.NewSession(cat, app.PageSize()).OpenDetailByISBN(args[0])
			if err != nil {
				return err
			}
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), output.BookDetail{Detail: detail})
		},
	}
}
