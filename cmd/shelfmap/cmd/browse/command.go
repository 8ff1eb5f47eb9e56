// Package browse provides the interactive browse command.
package browse

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/agentstation/shelfmap/cmd/application"
	"github.com/agentstation/shelfmap/internal/cmd/output"
	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/catalogs"
	"github.com/agentstation/shelfmap/pkg/filter"
)

const help = `Enter            next page
/text            search title and author
lang <language>  filter by language (empty clears)
year <year>      filter by year (empty clears)
clear            drop every filter
show <isbn>      book detail
q                quit
`

// NewCommand creates the browse command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "browse",
		GroupID: "core",
		Short:   "Page through the catalog interactively",
		Long: `Browse shows the first page of the catalog and loads the next page each
time you press Enter, until the results run out. Changing the search or a
filter starts again from the first page.

` + help,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			b := New(catalogs.NewSession(cat, app.PageSize()), cmd.OutOrStdout())
			return b.Run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

// Browser drives a session from line input. Each empty line is one
// visibility signal for the session's page trigger.
type Browser struct {
	session *catalogs.Session
	out     io.Writer

	mu        sync.Mutex // guards out
	signals   chan struct{}
	delivered chan struct{}
}

// New returns a browser writing to out.
func New(session *catalogs.Session, out io.Writer) *Browser {
	return &Browser{
		session:   session,
		out:       out,
		signals:   make(chan struct{}),
		delivered: make(chan struct{}, 1),
	}
}

// Run reads commands from in until it is exhausted, q is entered or ctx ends.
func (b *Browser) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	b.session.Attach(ctx, b.signals, b.render)
	defer b.session.Detach()

	b.session.SetQuery(filter.Query{})

	scanner := bufio.NewScanner(in)
	for {
		b.prompt()
		if !scanner.Scan() {
			return scanner.Err()
		}
		if quit := b.handle(ctx, strings.TrimSpace(scanner.Text())); quit {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (b *Browser) handle(ctx context.Context, line string) bool {
	q := b.session.Query()
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch {
	case line == "":
		b.next(ctx)
	case line == "q" || line == "quit" || line == "exit":
		return true
	case line == "?" || line == "help":
		b.printf("%s", help)
	case strings.HasPrefix(line, "/"):
		q.Text = strings.TrimPrefix(line, "/")
		b.session.SetQuery(q)
	case cmd == "lang":
		q.Language = arg
		b.session.SetQuery(q)
	case cmd == "year":
		q.Year = arg
		b.session.SetQuery(q)
	case cmd == "clear":
		b.session.SetQuery(filter.Query{})
	case cmd == "show":
		b.show(arg)
	default:
		b.printf("Unknown command %q, type ? for help\n", line)
	}
	return false
}

// next fires one signal and waits for its page.
func (b *Browser) next(ctx context.Context) {
	if !b.session.HasMore() {
		b.printf("No more books.\n")
		return
	}
	select {
	case b.signals <- struct{}{}:
	case <-ctx.Done():
		return
	}
	select {
	case <-b.delivered:
	case <-ctx.Done():
	}
}

// render is the session's page sink. It runs with the session locked.
func (b *Browser) render(page []books.Book, reset bool) {
	b.mu.Lock()
	if reset {
		fmt.Fprintln(b.out)
	}
	if len(page) == 0 && reset {
		fmt.Fprintln(b.out, "No books match.")
	} else {
		_ = output.Write(b.out, output.FormatTable, output.CardsTable(books.Cards(page)))
	}
	b.mu.Unlock()

	if !reset {
		select {
		case b.delivered <- struct{}{}:
		default:
		}
	}
}

func (b *Browser) show(isbn string) {
	detail, err := b.session.OpenDetailByISBN(isbn)
	if err != nil {
		b.printf("%v\n", err)
		return
	}
	defer b.session.CloseDetail()

	b.mu.Lock()
	defer b.mu.Unlock()
	_ = output.Write(b.out, output.FormatTable, output.BookDetail{Detail: detail})
}

func (b *Browser) prompt() {
	rendered := b.session.Rendered()
	total := len(b.session.View())
	b.printf("[%d/%d] > ", rendered, total)
}

func (b *Browser) printf(format string, args ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintf(b.out, format, args...)
}
