// Package list provides the list command.
package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/shelfmap/cmd/application"
	"github.com/agentstation/shelfmap/internal/cmd/completion"
	"github.com/agentstation/shelfmap/internal/cmd/output"
	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/constants"
	"github.com/agentstation/shelfmap/pkg/errors"
	"github.com/agentstation/shelfmap/pkg/filter"
	"github.com/agentstation/shelfmap/pkg/pagination"
)

// Flags holds the list command flags.
type Flags struct {
	Search   string
	Language string
	Year     string
	Page     int
	PageSize int
	All      bool
}

// Query returns the filter described by the flags.
func (f *Flags) Query() filter.Query {
	return filter.Query{Text: f.Search, Language: f.Language, Year: f.Year}
}

// NewCommand creates the list command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}
	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Short:   "List books in the catalog",
		Long: `List prints one page of the catalog, optionally filtered.

The search text matches title and author, case-insensitively, as a plain
substring. Language and year must match exactly. Filters combine with AND.`,
		Example: `  shelfmap list                          # First page
  shelfmap list --search borges          # Title or author contains "borges"
  shelfmap list --language Español --year 2018
  shelfmap list --page 3 --page-size 10
  shelfmap list --all -o json            # Every matching book`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("page-size") {
				flags.PageSize = app.PageSize()
			}
			result, err := Run(cmd, app, flags)
			if err != nil {
				return err
			}
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), result)
		},
	}

	cmd.Flags().StringVarP(&flags.Search, "search", "s", "", "match title or author")
	cmd.Flags().StringVar(&flags.Language, "language", "", "exact language")
	cmd.Flags().StringVar(&flags.Year, "year", "", "exact publication year")
	cmd.Flags().IntVarP(&flags.Page, "page", "p", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&flags.PageSize, "page-size", constants.DefaultPageSize, "books per page")
	cmd.Flags().BoolVarP(&flags.All, "all", "a", false, "print every matching book")
	cmd.MarkFlagsMutuallyExclusive("all", "page")

	_ = cmd.RegisterFlagCompletionFunc("language", completion.Languages(app.Catalog))
	_ = cmd.RegisterFlagCompletionFunc("year", completion.Years(app.Catalog))

	return cmd
}

// Run loads the catalog and returns the requested page.
func Run(cmd *cobra.Command, app application.Application, flags *Flags) (output.BookPage, error) {
	if flags.Page < 1 {
		return output.BookPage{}, errors.NewValidationError("page", flags.Page, "must be at least 1")
	}
	if flags.PageSize < 1 || flags.PageSize > constants.MaxPageSize {
		return output.BookPage{}, errors.NewValidationError("page_size", flags.PageSize, "out of range")
	}

	cat, err := app.Catalog(cmd.Context())
	if err != nil {
		return output.BookPage{}, err
	}
	view := cat.Filter(flags.Query())
	app.Metrics().ObserveFilter(len(view))

	app.Logger().Debug().
		Str("search", flags.Search).
		Str("language", flags.Language).
		Str("year", flags.Year).
		Int("matches", len(view)).
		Msg("Filtered catalog")

	if flags.All {
		return output.BookPage{
			Books: books.Cards(view),
			Page:  1,
			Pages: min(1, len(view)),
			Total: len(view),
		}, nil
	}

	page, more := pagination.PageAt(view, flags.Page-1, flags.PageSize)
	return output.BookPage{
		Books:   books.Cards(page),
		Page:    flags.Page,
		Pages:   pagination.Pages(len(view), flags.PageSize),
		Total:   len(view),
		HasMore: more,
	}, nil
}
